package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-keeper/internal/codec"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/session"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// echoCaller records the request it receives and answers with respond.
type echoCaller struct {
	got     models.Request
	respond func(req models.Request) (models.Envelope, error)
}

func (e *echoCaller) Call(_ context.Context, req models.Request) (models.Envelope, error) {
	e.got = req
	if e.respond != nil {
		return e.respond(req)
	}
	return models.Envelope{Data: req.Body}, nil
}

func newKeyStore(t *testing.T, key *crypto.Key) *session.KeyStore {
	t.Helper()
	ks := session.NewKeyStore(session.NewMemoryStorage(), logger.Nop())
	if key != nil {
		require.NoError(t, ks.SetKey(key, []byte("salt")))
	}
	t.Cleanup(func() { _ = ks.ClearKey() })
	return ks
}

func deriveTestKey(t *testing.T, password string) *crypto.Key {
	t.Helper()
	key, err := crypto.DeriveKey(password, []byte("salt"), 1_000)
	require.NoError(t, err)
	return key
}

func TestEncryptedTransport_PassThroughWithoutKey(t *testing.T) {
	next := &echoCaller{}
	tr := NewEncryptedTransport(next, newKeyStore(t, nil), codec.New(), logger.Nop())

	body := map[string]any{"name": "Rent", "amount": 1200.0}
	env, err := tr.Call(context.Background(), models.Request{Method: "POST", Path: "/api/fixed-expenses", Body: body, Entity: models.FixedExpense})

	require.NoError(t, err)
	assert.Equal(t, body, next.got.Body)
	assert.Equal(t, body, env.Data)
}

func TestEncryptedTransport_EncryptsBodyAndDecryptsResponse(t *testing.T) {
	key := deriveTestKey(t, "OldPass1!")
	next := &echoCaller{}
	tr := NewEncryptedTransport(next, newKeyStore(t, key), codec.New(), logger.Nop())

	env, err := tr.Call(context.Background(), models.Request{
		Method: "POST",
		Path:   "/api/fixed-expenses",
		Body:   map[string]any{"id": "1", "name": "Rent", "amount": 1200.0, "due_day": 5.0},
		Entity: models.FixedExpense,
	})
	require.NoError(t, err)

	sent, ok := next.got.Body.(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, sent, "name")
	assert.NotContains(t, sent, "amount")
	assert.Contains(t, sent, "name_enc")
	assert.Contains(t, sent, "name_iv")
	assert.Contains(t, sent, "amount_enc")
	assert.Equal(t, 5.0, sent["due_day"])

	assert.Equal(t, map[string]any{"id": "1", "name": "Rent", "amount": 1200.0, "due_day": 5.0}, env.Data)
}

func TestEncryptedTransport_DecryptsListResponse(t *testing.T) {
	key := deriveTestKey(t, "OldPass1!")
	ct, iv, err := crypto.EncryptString(`"Salary"`, key)
	require.NoError(t, err)

	next := &echoCaller{respond: func(models.Request) (models.Envelope, error) {
		return models.Envelope{Data: []any{
			map[string]any{"id": 1.0, "name_enc": ct, "name_iv": iv},
		}}, nil
	}}
	tr := NewEncryptedTransport(next, newKeyStore(t, key), codec.New(), logger.Nop())

	env, err := tr.Call(context.Background(), models.Request{Method: "GET", Path: "/api/incomes", Entity: models.Income})

	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": 1.0, "name": "Salary"}}, env.Data)
	assert.Nil(t, next.got.Body)
}

func TestEncryptedTransport_StrictSurfacesUndecryptableFields(t *testing.T) {
	other := deriveTestKey(t, "SomeoneElse")
	ct, iv, err := crypto.EncryptString(`"Salary"`, other)
	require.NoError(t, err)

	next := &echoCaller{respond: func(models.Request) (models.Envelope, error) {
		return models.Envelope{Data: map[string]any{"id": 1.0, "name": "stale", "name_enc": ct, "name_iv": iv}}, nil
	}}
	tr := NewEncryptedTransport(next, newKeyStore(t, deriveTestKey(t, "OldPass1!")), codec.New(codec.WithPolicy(codec.PolicyStrict)), logger.Nop())

	env, err := tr.Call(context.Background(), models.Request{Method: "GET", Path: "/api/incomes/1", Entity: models.Income})

	var decErr *codec.DecryptionErrors
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, []string{"name"}, decErr.Paths())
	data := env.Data.(map[string]any)
	assert.NotContains(t, data, "name", "stale plaintext must never be shown")
	assert.Equal(t, ct, data["name_enc"])
}

func TestEncryptedTransport_CompatUsesPlaceholder(t *testing.T) {
	other := deriveTestKey(t, "SomeoneElse")
	ct, iv, err := crypto.EncryptString(`1200`, other)
	require.NoError(t, err)

	next := &echoCaller{respond: func(models.Request) (models.Envelope, error) {
		return models.Envelope{Data: map[string]any{"id": 1.0, "amount_enc": ct, "amount_iv": iv}}, nil
	}}
	tr := NewEncryptedTransport(next, newKeyStore(t, deriveTestKey(t, "OldPass1!")), codec.New(codec.WithPolicy(codec.PolicyCompat)), logger.Nop())

	env, err := tr.Call(context.Background(), models.Request{Method: "GET", Path: "/api/incomes/1", Entity: models.Income})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 1.0, "amount": 0}, env.Data)
}

func TestEncryptedTransport_PropagatesTransportError(t *testing.T) {
	boom := errors.New("boom")
	next := &echoCaller{respond: func(models.Request) (models.Envelope, error) {
		return models.Envelope{}, boom
	}}
	tr := NewEncryptedTransport(next, newKeyStore(t, deriveTestKey(t, "OldPass1!")), codec.New(), logger.Nop())

	_, err := tr.Call(context.Background(), models.Request{Method: "GET", Path: "/api/incomes"})

	assert.ErrorIs(t, err, boom)
}
