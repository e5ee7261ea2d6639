package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/decentrix/decentrix/internal/client/chain"
	"github.com/decentrix/decentrix/internal/client/identity"
	"github.com/decentrix/decentrix/internal/logging"
)

// MaxPostLength caps post bodies, matching the contract-side limit.
const MaxPostLength = 280

var (
	ErrEmptyPost   = errors.New("post content is empty")
	ErrPostTooLong = fmt.Errorf("post content exceeds %d characters", MaxPostLength)
)

// Post is one feed entry as read from the contract. MediaCID is empty for
// text-only posts.
type Post struct {
	ID        *big.Int
	Author    common.Address
	Name      string
	UserID    string
	Avatar    string
	Content   string
	MediaCID  string
	Timestamp time.Time
}

// Draft is a post being published. Media is optional; when set, it is pinned
// first and its CID goes on chain with the post. Mutable posts go through the
// contract's editable storage and can be updated by their author later.
type Draft struct {
	Name      string
	UserID    string
	Avatar    string
	Content   string
	Media     io.Reader
	MediaName string
	Mutable   bool
}

// tweetRecord mirrors the on-chain tuple layout for ABI decoding.
type tweetRecord struct {
	Id        *big.Int
	Author    common.Address
	Name      string
	UserId    string
	Avatar    string
	Content   string
	MediaCID  string
	Timestamp *big.Int
}

// Service reads and publishes feed posts through the chain gateway.
type Service struct {
	gateway *chain.Gateway
	store   *PinStore
	ids     *identity.Resolver
	logger  logging.Logger
}

func NewService(gateway *chain.Gateway, store *PinStore, ids *identity.Resolver, logger logging.Logger) *Service {
	return &Service{gateway: gateway, store: store, ids: ids, logger: logger}
}

// All fetches every post, newest first.
func (s *Service) All(ctx context.Context) ([]Post, error) {
	return s.fetch(ctx, "getAllTweets")
}

// ByUser fetches the posts authored by the given wallet, newest first.
func (s *Service) ByUser(ctx context.Context, author common.Address) ([]Post, error) {
	return s.fetch(ctx, "getTweetsByUser", author)
}

// Publish validates the draft, pins its media when present, and submits the
// post transaction. The returned handle can be awaited for confirmation.
func (s *Service) Publish(ctx context.Context, draft Draft) (*chain.Handle, error) {
	content, mediaCID, err := s.prepare(ctx, draft)
	if err != nil {
		return nil, err
	}

	method := "postTweet"
	if draft.Mutable {
		method = "postMutableTweet"
	}
	handle, err := s.gateway.Send(ctx, method, draft.Name, draft.UserID, draft.Avatar, content, mediaCID)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "post submitted", "tx", handle.Hash().Hex())
	return handle, nil
}

// CommentOn publishes a reply to the post with tweetID. Replies share the
// post validation rules and media pinning path.
func (s *Service) CommentOn(ctx context.Context, tweetID *big.Int, draft Draft) (*chain.Handle, error) {
	content, mediaCID, err := s.prepare(ctx, draft)
	if err != nil {
		return nil, err
	}

	handle, err := s.gateway.Send(ctx, "addComment", tweetID, draft.Name, draft.UserID, draft.Avatar, content, mediaCID)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "comment submitted", "tweet", tweetID.String(), "tx", handle.Hash().Hex())
	return handle, nil
}

// prepare validates the draft body and pins its media when present.
func (s *Service) prepare(ctx context.Context, draft Draft) (content, mediaCID string, err error) {
	content = strings.TrimSpace(draft.Content)
	if content == "" {
		return "", "", ErrEmptyPost
	}
	if len([]rune(content)) > MaxPostLength {
		return "", "", ErrPostTooLong
	}

	if draft.Media != nil {
		cid, err := s.store.Pin(ctx, draft.MediaName, draft.Media)
		if err != nil {
			return "", "", err
		}
		mediaCID = cid
		s.logger.Debug(ctx, "media pinned", "cid", cid)
	}
	return content, mediaCID, nil
}

// PublishAnonymous publishes under the wallet's derived identifier with the
// anonymous display identity, for sessions that never signed in with a
// provider.
func (s *Service) PublishAnonymous(ctx context.Context, author common.Address, avatar, content string, media io.Reader, mediaName string) (*chain.Handle, error) {
	userID, err := s.ids.Resolve(ctx, author.Hex())
	if err != nil {
		return nil, err
	}
	return s.Publish(ctx, Draft{
		Name:      "Anonymous",
		UserID:    userID,
		Avatar:    avatar,
		Content:   content,
		Media:     media,
		MediaName: mediaName,
	})
}

// MediaURL renders the gateway link for a post's media, empty when none.
func (s *Service) MediaURL(p Post) string {
	return s.store.MediaURL(p.MediaCID)
}

func (s *Service) fetch(ctx context.Context, method string, args ...any) ([]Post, error) {
	values, err := s.gateway.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected output arity %d from %s", len(values), method)
	}

	records := *abi.ConvertType(values[0], new([]tweetRecord)).(*[]tweetRecord)

	posts := make([]Post, 0, len(records))
	for _, r := range records {
		posts = append(posts, Post{
			ID:        r.Id,
			Author:    r.Author,
			Name:      r.Name,
			UserID:    r.UserId,
			Avatar:    r.Avatar,
			Content:   r.Content,
			MediaCID:  r.MediaCID,
			Timestamp: time.Unix(r.Timestamp.Int64(), 0).UTC(),
		})
	}

	// Contract storage is append-only oldest-first; readers want newest first.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
	return posts, nil
}
