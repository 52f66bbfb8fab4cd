package client

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/tui"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type scriptedPrompter struct {
	answers []string
	labels  []string
}

func (p *scriptedPrompter) next(label string) (string, error) {
	p.labels = append(p.labels, label)
	if len(p.answers) == 0 {
		return "", errors.New("no more input")
	}
	v := p.answers[0]
	p.answers = p.answers[1:]
	return v, nil
}

func (p *scriptedPrompter) ReadLine(label string) (string, error)     { return p.next(label) }
func (p *scriptedPrompter) ReadPassword(label string) (string, error) { return p.next(label) }

type stubAuth struct {
	creds  models.Credentials
	result service.LoginResult
	err    error
	logout bool
}

func (s *stubAuth) Login(_ context.Context, creds models.Credentials) (service.LoginResult, error) {
	s.creds = creds
	return s.result, s.err
}

func (s *stubAuth) Logout(context.Context) error {
	s.logout = true
	return nil
}

func (s *stubAuth) RestoreSession(context.Context) (models.Session, bool) {
	return models.Session{}, false
}

type stubEncryption struct {
	result service.EnableResult
	err    error
}

func (s *stubEncryption) EnableEncryption(_ context.Context, _ string, progress service.ProgressFunc) (service.EnableResult, error) {
	progress(models.ReEncryptionProgress{Phase: models.PhaseUploading, Current: 1, Total: 1})
	return s.result, s.err
}

type stubPassword struct {
	oldPassword, newPassword string
	err                      error
}

func (s *stubPassword) ChangePassword(_ context.Context, oldPassword, newPassword string, _ service.ProgressFunc) error {
	s.oldPassword, s.newPassword = oldPassword, newPassword
	return s.err
}

type stubRecovery struct {
	login, mnemonic, password string
}

func (s *stubRecovery) Recover(_ context.Context, login, mnemonic, newPassword string) (models.Session, error) {
	s.login, s.mnemonic, s.password = login, mnemonic, newPassword
	return models.Session{Login: login}, nil
}

type stubRecords struct {
	entity models.EntityType
	recs   []models.Record
	err    error
}

func (s *stubRecords) List(_ context.Context, entity models.EntityType) ([]models.Record, error) {
	s.entity = entity
	return s.recs, s.err
}

func (s *stubRecords) Create(context.Context, models.EntityType, models.Record) (models.Record, error) {
	return nil, nil
}

func (s *stubRecords) Update(context.Context, models.EntityType, string, models.Record) (models.Record, error) {
	return nil, nil
}

func newTestApp(services *service.ClientServices, answers ...string) (*App, *scriptedPrompter, *bytes.Buffer) {
	var out bytes.Buffer
	prompt := &scriptedPrompter{answers: answers}
	ui := tui.New(nil, &out, logger.Nop())
	return NewApp(services, ui, prompt, &out, models.NewAppBuildInfo("v1.2.0", "", "abc123"), logger.Nop()), prompt, &out
}

func TestApp_Login(t *testing.T) {
	auth := &stubAuth{result: service.LoginResult{
		Session:           models.Session{Login: "alice"},
		EncryptionEnabled: true,
		PendingRotation:   &models.Rotation{Status: models.RotationDataMigrated},
	}}
	app, prompt, out := newTestApp(&service.ClientServices{AuthService: auth}, "alice", "secret")

	require.NoError(t, app.Run(context.Background(), []string{"login"}))

	assert.Equal(t, models.Credentials{Login: "alice", Password: "secret"}, auth.creds)
	assert.Equal(t, []string{"Login", "Password"}, prompt.labels)
	assert.Contains(t, out.String(), "Logged in as alice.")
	assert.Contains(t, out.String(), "interrupted key rotation was found (data_migrated)")
}

func TestApp_LoginEmptyInput(t *testing.T) {
	app, _, _ := newTestApp(&service.ClientServices{AuthService: &stubAuth{}}, "")
	err := app.Run(context.Background(), []string{"login"})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestApp_Logout(t *testing.T) {
	auth := &stubAuth{}
	app, _, out := newTestApp(&service.ClientServices{AuthService: auth})
	require.NoError(t, app.Run(context.Background(), []string{"logout"}))
	assert.True(t, auth.logout)
	assert.Contains(t, out.String(), "Logged out.")
}

func TestApp_EnableEncryptionShowsRecoveryKeyEvenOnFailure(t *testing.T) {
	boom := errors.New("upload failed")
	enc := &stubEncryption{
		result: service.EnableResult{RecoveryKey: "abandon art"},
		err:    boom,
	}
	app, _, out := newTestApp(&service.ClientServices{EncryptionService: enc}, "pw")

	err := app.Run(context.Background(), []string{"enable-encryption"})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, out.String(), "RECOVERY KEY")
	assert.Contains(t, out.String(), "abandon")
	assert.Contains(t, out.String(), "uploading 1/1")
}

func TestApp_ChangePassword(t *testing.T) {
	pw := &stubPassword{}
	app, _, out := newTestApp(&service.ClientServices{PasswordService: pw}, "old", "new", "new")

	require.NoError(t, app.Run(context.Background(), []string{"change-password"}))
	assert.Equal(t, "old", pw.oldPassword)
	assert.Equal(t, "new", pw.newPassword)
	assert.Contains(t, out.String(), "Password changed.")
}

func TestApp_ChangePasswordMismatch(t *testing.T) {
	pw := &stubPassword{}
	app, _, _ := newTestApp(&service.ClientServices{PasswordService: pw}, "old", "new", "typo")

	err := app.Run(context.Background(), []string{"change-password"})
	assert.ErrorIs(t, err, ErrPasswordsMismatch)
	assert.Empty(t, pw.newPassword)
}

func TestApp_ChangePasswordInterrupted(t *testing.T) {
	pw := &stubPassword{err: &service.ReKeyError{Phase: models.PhaseUploading, Err: errors.New("timeout")}}
	app, _, out := newTestApp(&service.ClientServices{PasswordService: pw}, "old", "new", "new")

	err := app.Run(context.Background(), []string{"change-password"})
	var rkErr *service.ReKeyError
	assert.ErrorAs(t, err, &rkErr)
	assert.Contains(t, out.String(), "was not changed")
}

func TestApp_Recover(t *testing.T) {
	rec := &stubRecovery{}
	app, _, out := newTestApp(&service.ClientServices{RecoveryService: rec}, "alice", "word list", "new", "new")

	require.NoError(t, app.Run(context.Background(), []string{"recover"}))
	assert.Equal(t, "alice", rec.login)
	assert.Equal(t, "word list", rec.mnemonic)
	assert.Equal(t, "new", rec.password)
	assert.Contains(t, out.String(), "cannot be decrypted")
}

func TestApp_List(t *testing.T) {
	partial := errors.New("1 field could not be decrypted")
	records := &stubRecords{recs: []models.Record{{"id": "7", "name": "Rent"}}, err: partial}
	app, _, out := newTestApp(&service.ClientServices{RecordService: records})

	err := app.Run(context.Background(), []string{"list", "fixed-expenses"})

	assert.ErrorIs(t, err, partial)
	assert.Equal(t, models.FixedExpense, records.entity)
	assert.Contains(t, out.String(), "#7  name=Rent")
}

func TestApp_Usage(t *testing.T) {
	app, _, out := newTestApp(&service.ClientServices{})

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"list"}), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"sync"}), ErrUnknownCommand)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"list", "passwords"}), models.ErrUnknownEntityType)
	assert.Contains(t, out.String(), "usage:")
}

func TestApp_Version(t *testing.T) {
	app, _, out := newTestApp(&service.ClientServices{})
	require.NoError(t, app.Run(context.Background(), []string{"version"}))
	assert.Contains(t, out.String(), "Build version: v1.2.0")
	assert.Contains(t, out.String(), "Build date: N/A")
}
