package json

import (
	"fmt"
	"time"

	"github.com/fwojciec/ooba"
)

// messageDTO is the JSON representation of a Message.
type messageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func marshalMessage(msg ooba.Message) (messageDTO, error) {
	if !msg.Role.Valid() {
		return messageDTO{}, fmt.Errorf("unknown role: %q", msg.Role)
	}
	return messageDTO{
		Role:      string(msg.Role),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}, nil
}

func unmarshalMessage(dto messageDTO) (ooba.Message, error) {
	role := ooba.Role(dto.Role)
	if !role.Valid() {
		return ooba.Message{}, fmt.Errorf("unknown role: %q", dto.Role)
	}
	return ooba.Message{
		Role:      role,
		Content:   dto.Content,
		Timestamp: dto.Timestamp,
	}, nil
}
