// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-bio-auth/internal/app"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

var gzipWriters = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

var gzipReaders = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZip inflates request bodies sent with "Content-Encoding: gzip", which
// lets clients compress their base64 samples, and compresses JSON responses
// for clients that accept gzip.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil && r.Body != http.NoBody {
			zr := gzipReaders.Get().(*gzip.Reader)
			if err := zr.Reset(r.Body); err != nil {
				gzipReaders.Put(zr)
				logger.FromRequest(r).Warn().Err(err).Msg("invalid gzip request body")
				utils.WriteJSON(w, models.ErrorResponse{Error: "invalid gzip body", Kind: app.KindInvalidRequest}, http.StatusBadRequest)
				return
			}
			body := &gzipBody{zr: zr, raw: r.Body}
			defer body.Close()

			r.Body = body
			r.ContentLength = -1
			r.Header.Del("Content-Encoding")
			r.Header.Del("Content-Length")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add("Vary", "Accept-Encoding")
		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.finish()
		next.ServeHTTP(gw, r)
	})
}

// gzipBody returns its reader to the pool on the first Close.
type gzipBody struct {
	zr  *gzip.Reader
	raw io.ReadCloser
}

func (b *gzipBody) Read(p []byte) (int, error) {
	if b.zr == nil {
		return 0, http.ErrBodyReadAfterClose
	}
	return b.zr.Read(p)
}

func (b *gzipBody) Close() error {
	if b.zr == nil {
		return nil
	}
	_ = b.zr.Close()
	gzipReaders.Put(b.zr)
	b.zr = nil
	return b.raw.Close()
}

// gzipResponseWriter decides on the first WriteHeader whether to compress:
// only JSON bodies are compressed, and only when the handler did not encode
// the body itself.
type gzipResponseWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
}

func (g *gzipResponseWriter) WriteHeader(status int) {
	if g.wroteHeader {
		return
	}
	g.wroteHeader = true

	h := g.Header()
	if compressible(h, status) {
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
		g.zw = gzipWriters.Get().(*gzip.Writer)
		g.zw.Reset(g.ResponseWriter)
	}
	g.ResponseWriter.WriteHeader(status)
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if !g.wroteHeader {
		g.WriteHeader(http.StatusOK)
	}
	if g.zw == nil {
		return g.ResponseWriter.Write(b)
	}
	return g.zw.Write(b)
}

func (g *gzipResponseWriter) finish() {
	if g.zw == nil {
		return
	}
	_ = g.zw.Close()
	gzipWriters.Put(g.zw)
	g.zw = nil
}

func compressible(h http.Header, status int) bool {
	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}
	if h.Get("Content-Encoding") != "" {
		return false
	}
	return strings.HasPrefix(h.Get("Content-Type"), "application/json")
}
