package service

import (
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/models"
)

// ReKeyError reports where a key rotation stopped. Records uploaded before
// the failure are already under the new key and recorded in the ledger; a
// rerun with the same passwords resumes from there.
type ReKeyError struct {
	Phase      models.ReEncryptionPhase
	Current    int
	Total      int
	EntityType models.EntityType
	Err        error
}

func (e *ReKeyError) Error() string {
	if e.EntityType != "" {
		return fmt.Sprintf("re-encryption failed while %s (%d/%d, %s): %v", e.Phase, e.Current, e.Total, e.EntityType, e.Err)
	}
	return fmt.Sprintf("re-encryption failed while %s (%d/%d): %v", e.Phase, e.Current, e.Total, e.Err)
}

func (e *ReKeyError) Unwrap() error {
	return e.Err
}
