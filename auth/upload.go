package auth

import (
	"context"
	"encoding/json"
)

// UploadFile describes the file a client intends to upload.
type UploadFile struct {
	// Type is the kind of upload (eg. "generic" or "image").
	Type        string `json:"type"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Bytes       int64  `json:"bytes"`
}

// UploadMetadata describes where and what a client intends to upload.
type UploadMetadata struct {
	// Path is the location key the file is uploaded to (eg. "articles/123").
	Path string     `json:"path"`
	File UploadFile `json:"file"`
}

// UploadPolicy is the response of the upload policy service.
//
// The body is opaque and passed through unmodified.
// StatusCode is informational: a non-2xx response is still returned as an UploadPolicy.
type UploadPolicy struct {
	StatusCode int
	Body       json.RawMessage
}

// Decode unmarshals the policy body into v.
func (p UploadPolicy) Decode(v any) error {
	return json.Unmarshal(p.Body, v)
}

// UploadPolicyFetcher exchanges a token and upload metadata for an UploadPolicy.
type UploadPolicyFetcher interface {
	FetchUploadPolicy(ctx context.Context, token string, metadata UploadMetadata) (UploadPolicy, error)
}
