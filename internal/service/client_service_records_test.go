package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/codec"
	"github.com/MKhiriev/go-fin-keeper/internal/mock"
	"github.com/MKhiriev/go-fin-keeper/models"
)

func TestClientRecordService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mock.NewMockCaller(ctrl)

	caller.EXPECT().
		Call(gomock.Any(), models.Request{Method: http.MethodGet, Path: "/api/credit-card-bills", Entity: models.CreditCardBill}).
		Return(models.Envelope{Data: []any{
			map[string]any{"id": 1.0, "description": "October"},
			map[string]any{"id": 2.0, "description": "November"},
		}}, nil)

	recs, err := NewClientRecordService(caller).List(context.Background(), models.CreditCardBill)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "November", recs[1]["description"])
}

func TestClientRecordService_ListKeepsPartialData(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mock.NewMockCaller(ctrl)

	decErr := &codec.DecryptionErrors{}
	caller.EXPECT().Call(gomock.Any(), gomock.Any()).
		Return(models.Envelope{Data: []any{map[string]any{"id": "1", "name_enc": "x", "name_iv": "y"}}}, decErr)

	recs, err := NewClientRecordService(caller).List(context.Background(), models.Income)
	assert.ErrorAs(t, err, &decErr)
	assert.Len(t, recs, 1)
}

func TestClientRecordService_ListErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		env     models.Envelope
		callErr error
		wantErr error
	}{
		{name: "transport error", callErr: boom, wantErr: boom},
		{name: "object instead of list", env: models.Envelope{Data: map[string]any{}}, wantErr: ErrUnexpectedResponse},
		{name: "item is not an object", env: models.Envelope{Data: []any{"x"}}, wantErr: ErrUnexpectedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			caller := mock.NewMockCaller(ctrl)
			caller.EXPECT().Call(gomock.Any(), gomock.Any()).Return(tt.env, tt.callErr)

			recs, err := NewClientRecordService(caller).List(context.Background(), models.Income)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, recs)
		})
	}
}

func TestClientRecordService_CreateAndUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mock.NewMockCaller(ctrl)
	rec := models.Record{"name": "Car loan", "amount": 250.0}

	caller.EXPECT().
		Call(gomock.Any(), models.Request{Method: http.MethodPost, Path: "/api/fixed-expenses", Body: rec, Entity: models.FixedExpense}).
		Return(models.Envelope{Data: map[string]any{"id": 10.0, "name": "Car loan", "amount": 250.0}}, nil)
	caller.EXPECT().
		Call(gomock.Any(), models.Request{Method: http.MethodPut, Path: "/api/fixed-expenses/a%2Fb", Body: rec, Entity: models.FixedExpense}).
		Return(models.Envelope{Data: map[string]any{"id": "a/b"}}, nil)

	svc := NewClientRecordService(caller)

	created, err := svc.Create(context.Background(), models.FixedExpense, rec)
	require.NoError(t, err)
	id, ok := created.ID()
	assert.True(t, ok)
	assert.Equal(t, "10", id)

	updated, err := svc.Update(context.Background(), models.FixedExpense, "a/b", rec)
	require.NoError(t, err)
	assert.Equal(t, "a/b", updated["id"])

	_, err = svc.Update(context.Background(), models.FixedExpense, "", rec)
	assert.ErrorIs(t, err, ErrMissingRecordID)
}

func TestClientRecordService_WriteRejectsUnreadablePlaceholder(t *testing.T) {
	ctrl := gomock.NewController(t)
	// the caller must never be reached
	caller := mock.NewMockCaller(ctrl)
	svc := NewClientRecordService(caller)

	rec := models.Record{"id": "1", "name": codec.UnreadableText, "amount": 0.0}

	_, err := svc.Update(context.Background(), models.Income, "1", rec)
	assert.ErrorIs(t, err, ErrUnreadableRecord)

	_, err = svc.Create(context.Background(), models.Income, rec)
	assert.ErrorIs(t, err, ErrUnreadableRecord)
}
