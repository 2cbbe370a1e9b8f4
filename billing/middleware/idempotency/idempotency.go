// Package idempotency deduplicates retried writes on endpoints tagged
// idempotency. Callers send X-Idempotency-Key; a completed request replays its
// cached response, a request still in flight is rejected with Aborted.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/middleware"
	"encore.dev/rlog"
	"encore.dev/storage/cache"

	"trm.app/billing/model"
)

const (
	HeaderName   = "X-Idempotency-Key"
	maxKeyLength = 255
)

//encore:middleware target=tag:idempotency
func IdempotencyMiddleware(req middleware.Request, next middleware.Next) middleware.Response {
	key, err := extractIdempotencyKey(req)
	if err != nil {
		return middleware.Response{Err: err}
	}

	ctx := req.Context()
	cacheKey := model.IdempotencyKey{Resource: resource(req), Key: key}
	bodyHash := generateBodyHash(req)
	now := time.Now().UTC()

	claimErr := entries.SetIfNotExists(ctx, cacheKey, model.IdempotencyCacheEntry{
		Status:          model.IdempotencyProcessing,
		RequestBodyHash: bodyHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	switch {
	case claimErr == nil:
		response := next(req)
		if response.Err != nil {
			// Let the client retry with the same key.
			deleteCacheEntry(ctx, cacheKey)
		} else {
			markAsCompleted(ctx, cacheKey, bodyHash, now, response)
		}
		return response
	case !errors.Is(claimErr, cache.KeyExists):
		rlog.Error("failed to claim idempotency key", "resource", cacheKey.Resource, "key", key, "error", claimErr)
		return middleware.Response{Err: &errs.Error{Code: errs.Unavailable, Message: "failed to check idempotency key"}}
	}

	entry, getErr := entries.Get(ctx, cacheKey)
	if getErr != nil {
		if errors.Is(getErr, cache.Miss) {
			// Expired or released between the claim and the read.
			return middleware.Response{Err: &errs.Error{Code: errs.Aborted, Message: "request is being retried, try again"}}
		}
		rlog.Error("failed to read idempotency entry", "resource", cacheKey.Resource, "key", key, "error", getErr)
		return middleware.Response{Err: &errs.Error{Code: errs.Unavailable, Message: "failed to check idempotency key"}}
	}
	return handleExistingEntry(req, next, entry, bodyHash, key)
}

func extractIdempotencyKey(req middleware.Request) (string, *errs.Error) {
	var key string
	if headers := req.Data().Headers; headers != nil {
		key = strings.TrimSpace(headers.Get(HeaderName))
	}
	if key == "" {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: HeaderName + " header is required"}
	}
	if len(key) > maxKeyLength {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: HeaderName + " header must be at most 255 characters"}
	}
	return key, nil
}

// resource scopes keys to the endpoint so the same key may be used against
// different endpoints.
func resource(req middleware.Request) string {
	data := req.Data()
	if data.Service != "" && data.Endpoint != "" {
		return data.Service + "." + data.Endpoint
	}
	return data.Path
}

func generateBodyHash(req middleware.Request) string {
	payload := req.Data().Payload
	if payload == nil {
		return ""
	}
	body, err := json.Marshal(payload)
	if err != nil {
		rlog.Error("failed to marshal request body", "error", err)
		return ""
	}
	return hashing(body)
}

func handleExistingEntry(req middleware.Request, next middleware.Next, entry model.IdempotencyCacheEntry, bodyHash, key string) middleware.Response {
	if err := validateBodyHash(entry, bodyHash); err != nil {
		return middleware.Response{Err: err}
	}

	switch entry.Status {
	case model.IdempotencyProcessing:
		return handleProcessingEntry(key)
	case model.IdempotencyCompleted:
		return handleCompletedEntry(req, next, entry, key)
	default:
		rlog.Warn("unknown idempotency entry status, processing as new request", "key", key, "status", entry.Status)
		return next(req)
	}
}

func validateBodyHash(entry model.IdempotencyCacheEntry, bodyHash string) *errs.Error {
	if bodyHash != "" && entry.RequestBodyHash != "" && bodyHash != entry.RequestBodyHash {
		return &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key conflict: request body does not match previous request"}
	}
	return nil
}

func handleProcessingEntry(key string) middleware.Response {
	rlog.Info("concurrent request detected", "key", key)
	return middleware.Response{
		Err: &errs.Error{Code: errs.Aborted, Message: "request with this idempotency key is already being processed"},
	}
}

func handleCompletedEntry(req middleware.Request, next middleware.Next, entry model.IdempotencyCacheEntry, key string) middleware.Response {
	if len(entry.Response) > 0 {
		if api := req.Data().API; api != nil && api.ResponseType != nil {
			value := reflect.New(api.ResponseType.Elem()).Interface()
			err := json.Unmarshal(entry.Response, value)
			if err == nil {
				rlog.Info("returning cached response", "key", key)
				return middleware.Response{Payload: value}
			}
			rlog.Error("failed to decode cached response", "key", key, "error", err)
		}
	}
	// The endpoints behind this middleware are idempotent themselves, so
	// running the request again is safe.
	return next(req)
}

func deleteCacheEntry(ctx context.Context, cacheKey model.IdempotencyKey) {
	if _, err := entries.Delete(ctx, cacheKey); err != nil {
		rlog.Error("failed to release idempotency key", "key", cacheKey.Key, "error", err)
	}
}

func markAsCompleted(ctx context.Context, cacheKey model.IdempotencyKey, bodyHash string, createdAt time.Time, response middleware.Response) {
	entry := model.IdempotencyCacheEntry{
		Status:          model.IdempotencyCompleted,
		RequestBodyHash: bodyHash,
		CreatedAt:       createdAt,
		UpdatedAt:       time.Now().UTC(),
	}
	if response.Payload != nil {
		payload, err := json.Marshal(response.Payload)
		if err != nil {
			rlog.Error("failed to marshal response for caching", "key", cacheKey.Key, "error", err)
			return
		}
		entry.Response = payload
	}
	if err := entries.Set(ctx, cacheKey, entry); err != nil {
		rlog.Error("failed to cache response", "key", cacheKey.Key, "error", err)
	}
}

func hashing(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
