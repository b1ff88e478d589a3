package ucictl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ucid/pkg/types"
)

// Client talks to a running ucid daemon over HTTP.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a client for the given base URL, e.g. http://localhost:8080.
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *Client) Status() (types.StatusResponse, error) {
	var st types.StatusResponse
	err := c.getJSON("/status", &st)
	return st, err
}

func (c *Client) BestMove(fen string, movetimeMs int) (types.BestMoveResult, error) {
	var res types.BestMoveResult
	err := c.postJSON("/bestmove", types.BestMoveRequest{FEN: fen, MovetimeMs: movetimeMs}, &res)
	return res, err
}

func (c *Client) Evaluate(fen string, depth int) (types.EvaluateResponse, error) {
	var res types.EvaluateResponse
	err := c.postJSON("/evaluate", types.EvaluateRequest{FEN: fen, Depth: depth}, &res)
	return res, err
}

func (c *Client) SetSkill(level int) error {
	return c.postJSON("/options/skill", types.SkillRequest{Level: level}, nil)
}

func (c *Client) SetMultiPV(n int) error {
	return c.postJSON("/options/multipv", types.MultiPVRequest{Value: n}, nil)
}

func (c *Client) Stop() error {
	return c.postJSON("/stop", struct{}{}, nil)
}

// StreamEvents copies NDJSON event lines from the daemon to out until the
// stream closes or reading fails.
func (c *Client) StreamEvents(out io.Writer) error {
	resp, err := c.http.Get(c.base + "/events")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		fmt.Fprintln(out, sc.Text())
	}
	return sc.Err()
}

func (c *Client) getJSON(path string, dst any) error {
	resp, err := c.http.Get(c.base + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *Client) postJSON(path string, body, dst any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.base+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if dst == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// apiError decodes the daemon's error envelope, falling back to the status.
func apiError(resp *http.Response) error {
	var er types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
		return fmt.Errorf("%s (HTTP %d)", er.Error, resp.StatusCode)
	}
	return fmt.Errorf("HTTP %d from daemon", resp.StatusCode)
}
