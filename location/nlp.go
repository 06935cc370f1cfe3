package location

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"
)

// nlpClient wraps the Cloud Natural Language entity API for the optional
// entity-extraction pass.
type nlpClient struct {
	client *language.Client
}

func newNLPClientFromEnv(ctx context.Context) *nlpClient {
	encodedCreds := os.Getenv("NATURAL_LANGUAGE_CREDENTIALS")
	if encodedCreds == "" {
		return nil
	}
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		log.Printf("Failed to decode Natural Language credentials, entity extraction disabled: %v", err)
		return nil
	}
	client, err := language.NewClient(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		log.Printf("Failed to create Natural Language client, entity extraction disabled: %v", err)
		return nil
	}
	return &nlpClient{client: client}
}

// locationEntities returns the names of location-like entities in the text.
func (n *nlpClient) locationEntities(ctx context.Context, text string) ([]string, error) {
	req := &languagepb.AnalyzeEntitiesRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := n.client.AnalyzeEntities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("AnalyzeEntities error: %w", err)
	}

	var names []string
	for _, e := range resp.Entities {
		switch e.Type {
		case languagepb.Entity_LOCATION, languagepb.Entity_ADDRESS, languagepb.Entity_ORGANIZATION:
			names = append(names, e.Name)
		}
	}
	return names, nil
}

func (n *nlpClient) close() {
	if n != nil && n.client != nil {
		n.client.Close()
	}
}

// Close releases the external clients, if any were configured.
func (e *Extractor) Close() {
	e.nlp.close()
}
