package service

import (
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/codec"
	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/session"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
)

type ClientServices struct {
	AuthService       ClientAuthService
	EncryptionService ClientEncryptionService
	PasswordService   ClientPasswordService
	RecoveryService   ClientRecoveryService
	RecordService     ClientRecordService
	ReKeyOrchestrator ReKeyOrchestrator
}

func NewClientServices(
	cfg *config.ClientConfig,
	serverAdapter adapter.ServerAdapter,
	storages *store.ClientStorages,
	keys *session.KeyStore,
	sessions *session.AuthStore,
	logger *logger.Logger,
) (*ClientServices, error) {
	policy, err := codec.ParsePolicy(cfg.App.DecryptPolicy)
	if err != nil {
		return nil, fmt.Errorf("decrypt policy: %w", err)
	}
	fieldCodec := codec.New(
		codec.WithPolicy(policy),
		codec.WithRetainPlaintext(cfg.App.RetainPlaintext),
		codec.WithLogger(logger),
	)

	keychain := crypto.NewKeyChainService(cfg.App.KDFIterations)
	recovery := crypto.NewRecoveryKeyManager()
	transport := adapter.NewEncryptedTransport(serverAdapter, keys, fieldCodec, logger)
	orchestrator := NewReKeyOrchestrator(
		keychain,
		serverAdapter,
		storages.RotationLedger,
		fieldCodec,
		utils.NewUUIDGenerator(),
		cfg.Workers.UploadConcurrency,
		logger,
	)

	return &ClientServices{
		AuthService:       NewClientAuthValidationService(NewClientAuthService(serverAdapter, keychain, keys, sessions, storages.RotationLedger, logger)),
		EncryptionService: NewClientEncryptionService(serverAdapter, keychain, recovery, orchestrator, storages.RotationLedger, keys, sessions, logger),
		PasswordService:   NewClientPasswordValidationService(NewClientPasswordService(serverAdapter, keychain, orchestrator, storages.RotationLedger, keys, sessions, logger)),
		RecoveryService:   NewClientRecoveryValidationService(NewClientRecoveryService(serverAdapter, keychain, recovery, keys, sessions, logger)),
		RecordService:     NewClientRecordService(transport),
		ReKeyOrchestrator: orchestrator,
	}, nil
}
