// Package version exposes build metadata set with -ldflags:
//
//	go build -ldflags "-X github.com/lapisvisuals/lapis/version.Version=v1.0.0 \
//	  -X github.com/lapisvisuals/lapis/version.Revision=$(git rev-parse --short HEAD)"
package version
