package client

import (
	"context"

	"github.com/a-h/docchat/models"
	"github.com/a-h/jsonapi"
)

func New(baseURL string) Client {
	return Client{
		baseURL: baseURL,
	}
}

type Client struct {
	baseURL string
}

// UploadDocURL asks the server to fetch url and use it as the context for chat.
// A failed fetch is not an error, check the Status of the response.
func (c Client) UploadDocURL(ctx context.Context, req models.DocURLPostRequest) (resp models.DocURLPostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("upload_doc_url").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.DocURLPostRequest, models.DocURLPostResponse](ctx, url, req)
}

func (c Client) ChatPost(ctx context.Context, req models.ChatPostRequest) (resp models.ChatPostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("chat").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.ChatPostRequest, models.ChatPostResponse](ctx, url, req)
}
