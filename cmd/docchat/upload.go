package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/a-h/docchat/client"
	"github.com/a-h/docchat/models"
)

type UploadCommand struct {
	DocchatURL string `help:"The URL of the docchat server." env:"DOCCHAT_URL" default:"http://localhost:8000"`
	URL        string `arg:"" help:"The URL of the documentation to load."`
	Pretty     bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c UploadCommand) Run(ctx context.Context) (err error) {
	dc := client.New(c.DocchatURL)
	resp, err := dc.UploadDocURL(ctx, models.DocURLPostRequest{
		URL: c.URL,
	})
	if err != nil {
		return fmt.Errorf("failed to upload document URL: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	if err = enc.Encode(resp); err != nil {
		return err
	}
	if resp.Status != models.DocURLStatusSuccess {
		return fmt.Errorf("server failed to load document: %s", resp.Message)
	}
	return nil
}
