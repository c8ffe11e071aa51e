package dto

import (
	"encoding/base64"
	"time"

	secretsDomain "github.com/allisson/sealbox/internal/secrets/domain"
)

// SecretResponse represents a secret in API responses.
// The Value field is base64-encoded plaintext and is only included in GET
// responses; creation and listing return metadata only.
type SecretResponse struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Version   uint      `json:"version"`
	Value     string    `json:"value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListSecretsResponse is the paginated envelope for secret listings.
type ListSecretsResponse struct {
	Secrets []SecretResponse `json:"secrets"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

// MapSecretToCreateResponse converts a domain secret to a POST response.
// The plaintext value is excluded; only metadata is returned on creation.
func MapSecretToCreateResponse(secret *secretsDomain.Secret) SecretResponse {
	return SecretResponse{
		ID:        secret.ID.String(),
		Path:      secret.Path,
		Version:   secret.Version,
		CreatedAt: secret.CreatedAt,
	}
}

// MapSecretToGetResponse converts a domain secret to a GET response,
// including the base64-encoded plaintext. The caller must zero
// secret.Plaintext after the response is written.
func MapSecretToGetResponse(secret *secretsDomain.Secret) SecretResponse {
	return SecretResponse{
		ID:        secret.ID.String(),
		Path:      secret.Path,
		Version:   secret.Version,
		Value:     base64.StdEncoding.EncodeToString(secret.Plaintext),
		CreatedAt: secret.CreatedAt,
	}
}

// MapSecretsToListResponse converts domain secrets to a paginated listing.
func MapSecretsToListResponse(secrets []*secretsDomain.Secret, offset, limit int) ListSecretsResponse {
	out := ListSecretsResponse{
		Secrets: make([]SecretResponse, 0, len(secrets)),
		Offset:  offset,
		Limit:   limit,
	}
	for _, secret := range secrets {
		out.Secrets = append(out.Secrets, MapSecretToCreateResponse(secret))
	}
	return out
}
