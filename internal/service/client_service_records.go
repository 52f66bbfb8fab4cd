package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/codec"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const apiPrefix = "/api/"

type clientRecordService struct {
	transport adapter.Caller
}

// NewClientRecordService returns a [ClientRecordService] over transport,
// normally an [adapter.EncryptedTransport].
func NewClientRecordService(transport adapter.Caller) ClientRecordService {
	return &clientRecordService{transport: transport}
}

// List returns the records of entity. Under the strict policy records with
// undecryptable fields are returned together with the error.
func (s *clientRecordService) List(ctx context.Context, entity models.EntityType) ([]models.Record, error) {
	env, callErr := s.transport.Call(ctx, models.Request{
		Method: http.MethodGet,
		Path:   apiPrefix + entity.Path(),
		Entity: entity,
	})
	if env.Data == nil {
		return nil, mapAdapterError(callErr)
	}

	items, ok := env.Data.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: list of %s is %T", ErrUnexpectedResponse, entity, env.Data)
	}
	records := make([]models.Record, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s item is %T", ErrUnexpectedResponse, entity, item)
		}
		records = append(records, rec)
	}
	return records, mapAdapterError(callErr)
}

// Create and Update refuse records carrying the compat placeholder text in a
// sensitive field. Numeric placeholders cannot be told apart from a real 0,
// so records meant to be written back should be read with the strict policy.
func (s *clientRecordService) Create(ctx context.Context, entity models.EntityType, rec models.Record) (models.Record, error) {
	return s.write(ctx, http.MethodPost, apiPrefix+entity.Path(), entity, rec)
}

func (s *clientRecordService) Update(ctx context.Context, entity models.EntityType, id string, rec models.Record) (models.Record, error) {
	if id == "" {
		return nil, ErrMissingRecordID
	}
	return s.write(ctx, http.MethodPut, apiPrefix+entity.Path()+"/"+url.PathEscape(id), entity, rec)
}

func (s *clientRecordService) write(ctx context.Context, method, path string, entity models.EntityType, rec models.Record) (models.Record, error) {
	if codec.HasPlaceholder(entity, rec) {
		return nil, fmt.Errorf("%w: %s", ErrUnreadableRecord, entity)
	}
	env, callErr := s.transport.Call(ctx, models.Request{Method: method, Path: path, Body: rec, Entity: entity})
	if env.Data == nil {
		return nil, mapAdapterError(callErr)
	}
	out, ok := env.Data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T", ErrUnexpectedResponse, entity, env.Data)
	}
	return out, mapAdapterError(callErr)
}
