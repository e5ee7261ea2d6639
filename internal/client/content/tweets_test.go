package content

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decentrix/decentrix/internal/client/chain"
	"github.com/decentrix/decentrix/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestContractABI_Parses(t *testing.T) {
	parsed := ContractABI()

	for _, method := range []string{"getAllTweets", "getTweetsByUser", "postTweet", "postMutableTweet", "addComment"} {
		_, ok := parsed.Methods[method]
		assert.True(t, ok, "missing method %s", method)
	}
}

func TestContractABI_PackPostTweet(t *testing.T) {
	parsed := ContractABI()

	data, err := parsed.Pack("postTweet", "Ada", "user_cafe0123", "https://a.example/a.png", "hello", "")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestPublish_ValidatesContent(t *testing.T) {
	// validation happens before any chain or store access
	s := NewService(nil, nil, nil, discardLogger())

	_, err := s.Publish(context.Background(), Draft{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyPost)

	_, err = s.Publish(context.Background(), Draft{Content: strings.Repeat("a", MaxPostLength+1)})
	assert.ErrorIs(t, err, ErrPostTooLong)
}

func TestPublish_LimitCountsRunes(t *testing.T) {
	provider := &stubProvider{code: []byte{0x60}}
	gateway := chain.New(provider, common.Address{0xaa}, ContractABI(), 0)
	s := NewService(gateway, nil, nil, discardLogger())

	// exactly at the limit in runes, over it in bytes
	content := strings.Repeat("ä", MaxPostLength)
	require.Greater(t, len(content), MaxPostLength)

	handle, err := s.Publish(context.Background(), Draft{Content: content})
	require.NoError(t, err)
	assert.NotNil(t, handle)
}

func TestPublish_SubmitsPostTweetCalldata(t *testing.T) {
	provider := &stubProvider{code: []byte{0x60}}
	gateway := chain.New(provider, common.Address{0xaa}, ContractABI(), 0)
	s := NewService(gateway, nil, nil, discardLogger())

	_, err := s.Publish(context.Background(), Draft{
		Name:    "Ada",
		UserID:  "user_cafe0123",
		Avatar:  "https://a.example/a.png",
		Content: "  hello  ",
	})
	require.NoError(t, err)

	want, err := ContractABI().Pack("postTweet", "Ada", "user_cafe0123", "https://a.example/a.png", "hello", "")
	require.NoError(t, err)
	// content is trimmed before it goes on chain
	assert.Equal(t, want, provider.sent)
}

func TestPublish_MutableUsesMutableMethod(t *testing.T) {
	provider := &stubProvider{code: []byte{0x60}}
	gateway := chain.New(provider, common.Address{0xaa}, ContractABI(), 0)
	s := NewService(gateway, nil, nil, discardLogger())

	_, err := s.Publish(context.Background(), Draft{
		Name:    "Ada",
		UserID:  "user_cafe0123",
		Content: "editable",
		Mutable: true,
	})
	require.NoError(t, err)

	want, err := ContractABI().Pack("postMutableTweet", "Ada", "user_cafe0123", "", "editable", "")
	require.NoError(t, err)
	assert.Equal(t, want, provider.sent)
}

func TestCommentOn_SubmitsAddCommentCalldata(t *testing.T) {
	provider := &stubProvider{code: []byte{0x60}}
	gateway := chain.New(provider, common.Address{0xaa}, ContractABI(), 0)
	s := NewService(gateway, nil, nil, discardLogger())

	_, err := s.CommentOn(context.Background(), big.NewInt(7), Draft{
		Name:    "Ada",
		UserID:  "user_cafe0123",
		Avatar:  "https://a.example/a.png",
		Content: "  nice post  ",
	})
	require.NoError(t, err)

	want, err := ContractABI().Pack("addComment", big.NewInt(7), "Ada", "user_cafe0123", "https://a.example/a.png", "nice post", "")
	require.NoError(t, err)
	assert.Equal(t, want, provider.sent)
}

func TestCommentOn_ValidatesContent(t *testing.T) {
	s := NewService(nil, nil, nil, discardLogger())

	_, err := s.CommentOn(context.Background(), big.NewInt(1), Draft{Content: " "})
	assert.ErrorIs(t, err, ErrEmptyPost)

	_, err = s.CommentOn(context.Background(), big.NewInt(1), Draft{Content: strings.Repeat("a", MaxPostLength+1)})
	assert.ErrorIs(t, err, ErrPostTooLong)
}

type stubProvider struct {
	code []byte
	sent []byte
}

func (f *stubProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return nil, nil
}

func (f *stubProvider) SignMessage(ctx context.Context, account common.Address, message []byte) ([]byte, error) {
	return nil, nil
}

func (f *stubProvider) CodeAt(ctx context.Context, contract common.Address) ([]byte, error) {
	return f.code, nil
}

func (f *stubProvider) CallContract(ctx context.Context, contract common.Address, data []byte) ([]byte, error) {
	return nil, nil
}

func (f *stubProvider) SendTransaction(ctx context.Context, contract common.Address, data []byte) (common.Hash, error) {
	f.sent = data
	return common.Hash{0x01}, nil
}

func (f *stubProvider) WaitMined(ctx context.Context, tx common.Hash) error {
	return nil
}
