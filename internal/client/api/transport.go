// Package api talks to the recruitment backend: a generic Transport that
// issues authenticated JSON/multipart requests, and a typed Client over it
// covering the auth, profile, role, and resume endpoints.
package api

import (
	"context"
	"encoding/json"
	"io"
)

// JSONBody wraps a value to be serialized as an application/json request body.
type JSONBody struct {
	Value any
}

// FormFile is one file part of a multipart request.
type FormFile struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     io.Reader
}

// MultipartBody is a multipart/form-data request body: plain text fields
// plus at most one file part. The boundary is negotiated by the encoder.
type MultipartBody struct {
	Fields map[string]string
	File   *FormFile
}

// Transport issues one request against the backend.
//
// Contract:
//   - a non-empty token is attached as "Authorization: Bearer <token>";
//   - body may be nil, JSONBody, or MultipartBody;
//   - HTTP 204 is a successful empty result (nil, nil);
//   - any non-2xx status yields *APIError;
//   - failures to reach the server at all wrap ErrUnavailable.
type Transport interface {
	Request(ctx context.Context, endpoint, method, token string, body any) (json.RawMessage, error)
}
