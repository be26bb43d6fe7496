package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind is the purpose of an upload; each kind gets its own sub-folder.
type Kind string

const (
	KindPhoto      Kind = "photo"
	KindAttachment Kind = "attachment"
	KindSubmission Kind = "submission"
	KindThumbnail  Kind = "thumbnail"
)

// ParseKind maps an empty or unknown value to KindAttachment.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPhoto, KindAttachment, KindSubmission, KindThumbnail:
		return k
	}
	return KindAttachment
}

// resourceType selects the Cloudinary upload endpoint for a kind.
func (k Kind) resourceType() string {
	if k == KindPhoto || k == KindThumbnail {
		return "image"
	}
	return "auto"
}

var ErrEmpty = errors.New("cloudinary: empty upload")

// Client uploads files to Cloudinary using their REST API.
type Client struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	BaseURL   string
	HTTP      *http.Client
	now       func() time.Time
}

// New creates a Cloudinary client.
func New(cloudName, apiKey, apiSecret, folder string) *Client {
	return &Client{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Folder:    folder,
		BaseURL:   "https://api.cloudinary.com/v1_1",
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		now:       time.Now,
	}
}

// UploadResult holds the response from Cloudinary after a successful upload.
type UploadResult struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	URL          string `json:"url"`
	ResourceType string `json:"resource_type"`
	Format       string `json:"format"`
	Bytes        int    `json:"bytes"`
}

func (c *Client) folder(kind Kind) string {
	if c.Folder == "" {
		return string(kind)
	}
	return c.Folder + "/" + string(kind)
}

// UploadBase64 uploads a data URL ("data:image/jpeg;base64,...") or raw base64.
func (c *Client) UploadBase64(ctx context.Context, kind Kind, data string) (*UploadResult, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, ErrEmpty
	}
	if !strings.HasPrefix(data, "data:") {
		data = "data:application/octet-stream;base64," + data
	}
	return c.upload(ctx, kind, func(w *multipart.Writer) error {
		return w.WriteField("file", data)
	})
}

// UploadBytes uploads raw file bytes.
func (c *Client) UploadBytes(ctx context.Context, kind Kind, data []byte, filename string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return c.upload(ctx, kind, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("cloudinary: create form file failed: %w", err)
		}
		_, err = io.Copy(part, bytes.NewReader(data))
		return err
	})
}

func (c *Client) upload(ctx context.Context, kind Kind, writeFile func(*multipart.Writer) error) (*UploadResult, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
		"api_key":   c.APIKey,
		"folder":    c.folder(kind),
	}
	params["signature"] = c.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	if err := writeFile(w); err != nil {
		return nil, err
	}
	w.Close()

	url := fmt.Sprintf("%s/%s/%s/upload", c.BaseURL, c.CloudName, kind.resourceType())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: create request failed: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cloudinary: upload failed (%d): %s", resp.StatusCode, string(body))
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("cloudinary: decode response failed: %w", err)
	}
	return &result, nil
}

// sign computes the API signature; api_key, file and resource_type are not signed.
func (c *Client) sign(params map[string]string) string {
	excludeKeys := map[string]bool{"api_key": true, "file": true, "resource_type": true}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if !excludeKeys[k] && v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)

	h := sha1.New()
	h.Write([]byte(strings.Join(pairs, "&") + c.APISecret))
	return fmt.Sprintf("%x", h.Sum(nil))
}
