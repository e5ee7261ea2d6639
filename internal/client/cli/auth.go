package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/decentrix/decentrix/internal/client/auth"
	"github.com/decentrix/decentrix/internal/client/wallet"
	"github.com/decentrix/decentrix/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Connect runs the wallet challenge–response sign-in.
func (a *App) Connect(ctx context.Context) error {
	err := a.orchestrator.ConnectWallet(ctx)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrProviderUnavailable):
			log.Printf("No wallet provider: %s", err.Error())
		case errors.Is(err, wallet.ErrSigningRejected):
			log.Printf("Signing rejected: %s", err.Error())
		case errors.Is(err, auth.ErrSignatureRejected):
			log.Printf("Signature rejected, try again")
		default:
			log.Printf("Wallet sign-in unsuccessfull: %s", err.Error())
		}
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and signs in against the verifier.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.orchestrator.SignInWithPassword(ctx, email, string(password)); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			log.Printf("Invalid credentials")
		} else {
			log.Printf("Login unsuccessfull: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successfull")
	return nil
}

// Register prompts the user for profile details and creates a new account
// via the verifier, then signs in with it.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.orchestrator.SignUp(ctx, email, string(password), firstName, lastName); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			log.Printf("Email already registered")
		} else {
			log.Printf("Registration unsuccessfull: %s", err.Error())
		}
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Logout drops the session and the locally stored identifier.
func (a *App) Logout(ctx context.Context) error {
	if err := a.orchestrator.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}
