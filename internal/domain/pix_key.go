package domain

import "time"

type PixKeyType string

const (
	PixKeyTypeCPF    PixKeyType = "cpf"
	PixKeyTypeCNPJ   PixKeyType = "cnpj"
	PixKeyTypeEmail  PixKeyType = "email"
	PixKeyTypePhone  PixKeyType = "phone"
	PixKeyTypeRandom PixKeyType = "random"
)

func (t PixKeyType) Valid() bool {
	switch t {
	case PixKeyTypeCPF, PixKeyTypeCNPJ, PixKeyTypeEmail, PixKeyTypePhone, PixKeyTypeRandom:
		return true
	}
	return false
}

type PixKeyStatus string

const (
	PixKeyStatusActive   PixKeyStatus = "active"
	PixKeyStatusInactive PixKeyStatus = "inactive"
)

func (s PixKeyStatus) Valid() bool {
	return s == PixKeyStatusActive || s == PixKeyStatusInactive
}

// PixKey maps a public alias value to the user that owns it. Only active keys
// resolve for transfers.
type PixKey struct {
	ID        string
	UserID    string
	KeyType   PixKeyType
	KeyValue  string
	Status    PixKeyStatus
	CreatedAt time.Time
}
