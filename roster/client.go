package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"roster-app-go/models"
)

const (
	// SampleSize is the number of records shown on the roster screen
	SampleSize = 10

	successStatus = "success"
	maxBodyBytes  = 8 << 20
)

var (
	// ErrTransport is returned when the request could not be completed
	ErrTransport = errors.New("roster: request failed")
	// ErrInvalidFormat is returned when the body is not a non-empty success payload
	ErrInvalidFormat = errors.New("roster: invalid or empty data format")
)

// StatusError is returned for a non-2xx response
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to fetch: %d - %s", e.Code, e.Text)
}

// envelope is the top level shape of the roster response
type envelope struct {
	Status json.RawMessage `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Client fetches the roster from the remote endpoint
type Client struct {
	URL        string
	HTTPClient *http.Client
	Rand       *rand.Rand // nil uses the shared source
}

// NewClient creates a Client with a bounded request timeout
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Load fetches the roster and returns a random sample of at most SampleSize records
func (c *Client) Load(ctx context.Context) ([]models.RosterRecord, error) {
	records, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Sample(records, SampleSize, c.Rand), nil
}

// Fetch performs the GET and returns every record of a valid response
func (c *Client) Fetch(ctx context.Context) ([]models.RosterRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	log.Printf("Fetching roster from %s", c.URL)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		log.Printf("Error fetching roster: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode, Text: statusText(resp)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Printf("Error reading roster body: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	records, err := decode(body)
	if err != nil {
		log.Printf("Rejected roster payload (%d bytes): %v", len(body), err)
		return nil, err
	}
	log.Printf("Received %d roster records", len(records))
	return records, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// decode validates the envelope. Any mismatch, including an empty data array, is ErrInvalidFormat.
func decode(body []byte) ([]models.RosterRecord, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: body: %v", ErrInvalidFormat, err)
	}

	var status string
	if err := json.Unmarshal(env.Status, &status); err != nil || status != successStatus {
		return nil, fmt.Errorf("%w: status %s", ErrInvalidFormat, env.Status)
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: data is not an array", ErrInvalidFormat)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrInvalidFormat, err)
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: data is empty", ErrInvalidFormat)
	}

	records := make([]models.RosterRecord, 0, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrInvalidFormat, i)
		}
		var rec models.RosterRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidFormat, i, err)
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrInvalidFormat, i)
		}
		records = append(records, rec)
	}
	return records, nil
}

// statusText strips the numeric code from resp.Status, e.g. "500 Internal Server Error"
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
