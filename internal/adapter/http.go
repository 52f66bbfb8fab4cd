package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	loginPath            = "/api/auth/login"
	encryptionPath       = "/api/auth/encryption"
	enableEncryptionPath = "/api/auth/enable-encryption"
	changePasswordPath   = "/api/auth/change-password"
	recoverPath          = "/api/auth/recover"
	recordsPrefix        = "/api/"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress and configures
// the request timeout and retry count.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout, cfg.RetryCount)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [AuthAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [AuthAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [AuthAdapter]. It POSTs the credentials to
// POST /api/auth/login. When the response carries no user id it is read from
// the subject of the bearer token.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(loginPath)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	return h.authResponse(resp, "login")
}

// Recover implements [AuthAdapter]. It POSTs the recovery request to
// POST /api/auth/recover; the response is handled like Login.
func (h *httpServerAdapter) Recover(ctx context.Context, req models.RecoveryRequest) (models.AuthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(recoverPath)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("recover request: %w", err)
	}
	return h.authResponse(resp, "recover")
}

func (h *httpServerAdapter) authResponse(resp *resty.Response, op string) (models.AuthResponse, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	var auth models.AuthResponse
	if err := decodeData(resp.Body(), &auth); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s decode response: %w", op, err)
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s parse bearer token: %w", op, err)
	}
	if auth.UserID == 0 {
		if auth.UserID, err = utils.ParseUserIDFromJWT(token); err != nil {
			h.logger.Warn().Err(err).Str("func", "httpServerAdapter.authResponse").Msg("token carries no user id")
		}
	}

	h.SetToken(token)
	auth.Token = token
	return auth, nil
}

// EncryptionProfile implements [AuthAdapter] with GET /api/auth/encryption.
func (h *httpServerAdapter) EncryptionProfile(ctx context.Context) (models.EncryptionProfile, error) {
	resp, err := h.authedRequest(ctx).Get(encryptionPath)
	if err != nil {
		return models.EncryptionProfile{}, fmt.Errorf("encryption profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptionProfile{}, err
	}

	var profile models.EncryptionProfile
	if err = decodeData(resp.Body(), &profile); err != nil {
		return models.EncryptionProfile{}, fmt.Errorf("decode encryption profile: %w", err)
	}
	return profile, nil
}

// EnableEncryption implements [AuthAdapter] with
// POST /api/auth/enable-encryption.
func (h *httpServerAdapter) EnableEncryption(ctx context.Context, req models.EnableEncryptionRequest) (models.EncryptionProfile, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(enableEncryptionPath)
	if err != nil {
		return models.EncryptionProfile{}, fmt.Errorf("enable encryption request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptionProfile{}, err
	}

	profile := models.EncryptionProfile{
		EncryptionSalt:  req.EncryptionSalt,
		RecoveryKeyHash: req.RecoveryKeyHash,
		Enabled:         true,
	}
	if len(resp.Body()) > 0 {
		if err = decodeData(resp.Body(), &profile); err != nil {
			return models.EncryptionProfile{}, fmt.Errorf("decode encryption profile: %w", err)
		}
	}
	return profile, nil
}

// ChangePassword implements [AuthAdapter] with
// POST /api/auth/change-password.
func (h *httpServerAdapter) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(changePasswordPath)
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	return mapHTTPError(resp)
}

// List implements [RecordStore] with GET /api/<entity path>.
func (h *httpServerAdapter) List(ctx context.Context, entity models.EntityType) ([]models.Record, error) {
	resp, err := h.authedRequest(ctx).Get(recordsPrefix + entity.Path())
	if err != nil {
		return nil, fmt.Errorf("list %s request: %w", entity, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.Record
	if err = decodeData(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", entity, err)
	}
	return records, nil
}

// Update implements [RecordStore] with PUT /api/<entity path>/<id>.
func (h *httpServerAdapter) Update(ctx context.Context, entity models.EntityType, id string, rec models.Record) error {
	if id == "" {
		return ErrMissingID
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rec).
		Put(recordsPrefix + entity.Path() + "/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("update %s request: %w", entity, err)
	}
	return mapHTTPError(resp)
}

// Call implements [Caller]. Bodies are sent as JSON; the response body is
// decoded into a [models.Envelope]. An empty response yields an empty
// envelope.
func (h *httpServerAdapter) Call(ctx context.Context, req models.Request) (models.Envelope, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r := h.authedRequest(ctx)
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	resp, err := r.Execute(method, req.Path)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%s %s request: %w", method, req.Path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Envelope{}, err
	}

	var env models.Envelope
	if len(resp.Body()) == 0 {
		return env, nil
	}
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return models.Envelope{}, fmt.Errorf("decode %s %s response: %w", method, req.Path, err)
	}
	return env, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// decodeData unmarshals the "data" member of a response envelope into out.
func decodeData(body []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
