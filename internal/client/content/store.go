package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUpload means the pinning service refused or failed the upload.
var ErrUpload = errors.New("media upload failed")

// PinStore uploads media to a pinning service and returns content
// identifiers that the feed contract stores alongside each post.
type PinStore struct {
	apiURL     string
	gatewayURL string
	apiKey     string
	apiSecret  string
	httpc      *http.Client
}

// NewPinStore builds a PinStore against apiURL, rendering public links
// through gatewayURL. A nil httpc gets a client with a generous timeout,
// uploads being the slowest call the client makes.
func NewPinStore(apiURL, gatewayURL, apiKey, apiSecret string, httpc *http.Client) *PinStore {
	if httpc == nil {
		httpc = &http.Client{Timeout: 2 * time.Minute}
	}
	return &PinStore{
		apiURL:     strings.TrimRight(apiURL, "/"),
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpc:      httpc,
	}
}

// Pin uploads the media as a multipart file and returns its CID.
func (s *PinStore) Pin(ctx context.Context, filename string, media io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if _, err := io.Copy(part, media); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("pinata_api_key", s.apiKey)
	req.Header.Set("pinata_secret_api_key", s.apiSecret)

	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpload, resp.StatusCode)
	}

	var out struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if out.IpfsHash == "" {
		return "", fmt.Errorf("%w: no hash in response", ErrUpload)
	}
	return out.IpfsHash, nil
}

// MediaURL renders the public gateway link for a CID. Empty in, empty out.
func (s *PinStore) MediaURL(cid string) string {
	if cid == "" {
		return ""
	}
	return s.gatewayURL + "/ipfs/" + cid
}
