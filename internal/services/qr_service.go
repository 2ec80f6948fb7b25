package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const posterSize = 256

// Poster is a printable QR code pointing volunteers at one request
type Poster struct {
	RequestID string `json:"requestId"`
	Link      string `json:"link"`
	PNG       []byte `json:"-"`
}

// Base64 returns the PNG encoded for embedding in JSON
func (p Poster) Base64() string {
	return base64.StdEncoding.EncodeToString(p.PNG)
}

// QRService renders request posters for elders to hand out or pin up
type QRService struct {
	baseURL  string
	requests RequestLookup
	logger   *zap.Logger
}

func NewQRService(baseURL string, requests RequestLookup, logger *zap.Logger) *QRService {
	return &QRService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		requests: requests,
		logger:   logger.Named("qr"),
	}
}

// Poster renders the QR code for requestID
func (s *QRService) Poster(requestID string) (Poster, error) {
	req, err := s.requests.Get(requestID)
	if err != nil {
		return Poster{}, err
	}

	link := fmt.Sprintf("%s/requests/%s", s.baseURL, req.ID)
	qr, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		s.logger.Error("qr encoding failed", zap.String("request_id", req.ID), zap.Error(err))
		return Poster{}, fmt.Errorf("encode qr for %s: %w", req.ID, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(posterSize)); err != nil {
		return Poster{}, fmt.Errorf("render qr for %s: %w", req.ID, err)
	}

	return Poster{RequestID: req.ID, Link: link, PNG: buf.Bytes()}, nil
}
