package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QRPayload is the text structure shown by the teacher and scanned by the student
type QRPayload struct {
	OTP       string   `json:"otp"`
	SSID      string   `json:"ssid"`
	TeacherID RecordID `json:"teacherId,omitempty"`
}

// NewQRPayload builds the payload for an OTP session
func NewQRPayload(s *OTPSession) QRPayload {
	return QRPayload{OTP: s.OTP, SSID: s.SSID, TeacherID: s.TeacherID}
}

// Encode renders the payload as compact JSON text
func (p QRPayload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}
	return string(b), nil
}

// ParseQRPayload decodes scanned text. Both otp and ssid must be present.
func ParseQRPayload(text string) (*QRPayload, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidQR
	}

	var raw struct {
		OTP       any      `json:"otp"`
		SSID      any      `json:"ssid"`
		TeacherID RecordID `json:"teacherId"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQR, err)
	}

	otp, ok := raw.OTP.(string)
	if !ok || otp == "" {
		return nil, fmt.Errorf("%w: missing otp", ErrInvalidQR)
	}
	ssid, ok := raw.SSID.(string)
	if !ok || ssid == "" {
		return nil, fmt.Errorf("%w: missing ssid", ErrInvalidQR)
	}

	return &QRPayload{OTP: otp, SSID: ssid, TeacherID: raw.TeacherID}, nil
}
