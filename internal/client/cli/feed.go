package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/decentrix/decentrix/internal/client/auth"
	"github.com/decentrix/decentrix/internal/client/chain"
	"github.com/decentrix/decentrix/internal/client/content"
	"github.com/decentrix/decentrix/internal/client/wallet"
)

// Feed prints the whole on-chain feed, newest first.
func (a *App) Feed(ctx context.Context) error {
	posts, err := a.tweets.All(ctx)
	if err != nil {
		a.reportChainError(err)
		return err
	}
	a.printPosts(posts)
	return nil
}

// My prints the posts authored by the connected wallet.
func (a *App) My(ctx context.Context) error {
	sess, ok := a.orchestrator.Session()
	if !ok || sess.WalletAddress == "" {
		fmt.Println("Connect a wallet first")
		return nil
	}

	posts, err := a.tweets.ByUser(ctx, ethcommon.HexToAddress(sess.WalletAddress))
	if err != nil {
		a.reportChainError(err)
		return err
	}
	a.printPosts(posts)
	return nil
}

// Post reads a post body (and optional media path) and publishes it.
func (a *App) Post(ctx context.Context) error {
	sess, ok := a.orchestrator.Session()
	if !ok {
		fmt.Println("Sign in first")
		return nil
	}
	if sess.WalletAddress == "" {
		fmt.Println("Publishing needs a connected wallet")
		return nil
	}

	body, err := GetMultiline(a.reader, "Enter post text", os.Stdout)
	if err != nil {
		return err
	}

	mediaPath, err := getSimpleText(a.reader, "Media file path (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	draft := content.Draft{
		Name:    sess.DisplayName,
		Avatar:  sess.AvatarURL,
		Content: body,
	}
	if mediaPath != "" {
		f, err := os.Open(mediaPath)
		if err != nil {
			log.Printf("Cannot read media: %s", err.Error())
			return err
		}
		defer f.Close()
		draft.Media = f
		draft.MediaName = mediaPath
	}

	var handle *chain.Handle
	if sess.Provider == auth.ProviderWallet {
		// Wallet-only sessions always post anonymously and immutably.
		handle, err = a.tweets.PublishAnonymous(ctx,
			ethcommon.HexToAddress(sess.WalletAddress), sess.AvatarURL, body, draft.Media, draft.MediaName)
	} else {
		var mutable string
		mutable, err = getSimpleText(a.reader, "Mutable post? (y/N)", os.Stdout)
		if err != nil {
			return err
		}
		draft.Mutable = strings.EqualFold(mutable, "y")
		handle, err = a.tweets.Publish(ctx, draft)
	}
	if err != nil {
		switch {
		case errors.Is(err, content.ErrEmptyPost), errors.Is(err, content.ErrPostTooLong):
			fmt.Println(err.Error())
		default:
			a.reportChainError(err)
		}
		return err
	}

	fmt.Printf("Submitted %s, waiting for confirmation...\n", handle.Hash().Hex())
	if err := handle.Wait(ctx); err != nil {
		log.Printf("Confirmation error: %s", err.Error())
		return err
	}
	fmt.Println("Confirmed!")
	return nil
}

// Comment reads a post id and a reply body and publishes the reply.
func (a *App) Comment(ctx context.Context) error {
	sess, ok := a.orchestrator.Session()
	if !ok {
		fmt.Println("Sign in first")
		return nil
	}
	if sess.WalletAddress == "" {
		fmt.Println("Commenting needs a connected wallet")
		return nil
	}

	idText, err := getSimpleText(a.reader, "Post id to reply to", os.Stdout)
	if err != nil {
		return err
	}
	tweetID, ok := new(big.Int).SetString(idText, 10)
	if !ok {
		fmt.Println("Not a post id:", idText)
		return nil
	}

	body, err := GetMultiline(a.reader, "Enter reply text", os.Stdout)
	if err != nil {
		return err
	}

	userID, err := a.ids.Resolve(ctx, sess.WalletAddress)
	if err != nil {
		log.Printf("Identifier error: %s", err.Error())
		return err
	}

	handle, err := a.tweets.CommentOn(ctx, tweetID, content.Draft{
		Name:    sess.DisplayName,
		UserID:  userID,
		Avatar:  sess.AvatarURL,
		Content: body,
	})
	if err != nil {
		switch {
		case errors.Is(err, content.ErrEmptyPost), errors.Is(err, content.ErrPostTooLong):
			fmt.Println(err.Error())
		default:
			a.reportChainError(err)
		}
		return err
	}

	fmt.Printf("Submitted %s, waiting for confirmation...\n", handle.Hash().Hex())
	if err := handle.Wait(ctx); err != nil {
		log.Printf("Confirmation error: %s", err.Error())
		return err
	}
	fmt.Println("Confirmed!")
	return nil
}

func (a *App) printPosts(posts []content.Post) {
	if len(posts) == 0 {
		fmt.Println("No posts yet")
		return
	}
	for _, p := range posts {
		fmt.Printf("[%s] %s (%s)\n", p.Timestamp.Format("2006-01-02 15:04"), p.Name, p.UserID)
		fmt.Println(p.Content)
		if p.MediaCID != "" {
			fmt.Println("media:", a.tweets.MediaURL(p))
		}
		fmt.Println()
	}
}

func (a *App) reportChainError(err error) {
	var revert *chain.RevertError
	switch {
	case errors.Is(err, chain.ErrNoContract):
		log.Printf("No contract at the configured address, check network")
	case errors.As(err, &revert):
		log.Printf("Call reverted: %s", revert.Error())
	case errors.Is(err, wallet.ErrProviderUnavailable):
		log.Printf("Provider unavailable: %s", err.Error())
	default:
		log.Printf("Chain error: %s", err.Error())
	}
}
