package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
	Out       io.Writer
}

func (c *client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Fprintln(c.Out, string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Fprintln(c.Out, strings.TrimSpace(string(body)))
	} else {
		fmt.Fprintf(c.Out, "status=%d\n", status)
	}
}

// readPayload reads a JSON document from path ("-" is stdin) and checks it
// parses, so a typo fails locally instead of as a 400.
func readPayload(path string, stdin io.Reader) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch path {
	case "":
		return nil, fmt.Errorf("--file is required")
	case "-":
		b, err = io.ReadAll(stdin)
	default:
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("%s: not valid JSON", path)
	}
	return b, nil
}
