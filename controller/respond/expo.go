package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/gin-gonic/gin"

	"expo-update-service/engine"
)

// Expo update protocol headers.
const (
	HeaderProtocolVersion  = "expo-protocol-version"
	HeaderSFVVersion       = "expo-sfv-version"
	HeaderPlatform         = "expo-platform"
	HeaderRuntimeVersion   = "expo-runtime-version"
	HeaderUpdatesKey       = "x-expo-updates-key"
	HeaderCurrentUpdateID  = "expo-current-update-id"
	HeaderEmbeddedUpdateID = "expo-embedded-update-id"
)

// ErrNoUpdateNotEncodable protocol version 0 has no representation for the
// noUpdateAvailable directive.
var ErrNoUpdateNotEncodable = errors.New("NoUpdateAvailable directive not available in protocol version 0")

// WriteManifest encode a resolved manifest as a multipart/mixed response
// with "manifest" and "extensions" parts.
func WriteManifest(c *gin.Context, protocolVersion int, manifest *engine.Manifest) error {
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return err
	}

	// One (currently empty) header map per asset key, launch asset
	// included.
	assetRequestHeaders := make(map[string]map[string]string, len(manifest.Assets)+1)
	for _, asset := range manifest.Assets {
		assetRequestHeaders[asset.Key] = map[string]string{}
	}
	assetRequestHeaders[manifest.LaunchAsset.Key] = map[string]string{}

	extensionsJSON, err := json.Marshal(map[string]interface{}{
		"assetRequestHeaders": assetRequestHeaders,
	})
	if err != nil {
		return err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := writeJSONPart(w, "manifest", manifestJSON); err != nil {
		return err
	}
	if err := writeJSONPart(w, "extensions", extensionsJSON); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	writeMultipart(c, protocolVersion, w.Boundary(), body.Bytes())
	return nil
}

// WriteDirective encode a directive as a multipart/mixed response with a
// single "directive" part. Encoding noUpdateAvailable under protocol
// version 0 is not representable and fails hard.
func WriteDirective(c *gin.Context, protocolVersion int, directive *engine.Directive) error {
	if directive.Type == engine.DirectiveNoUpdateAvailable && protocolVersion == 0 {
		return ErrNoUpdateNotEncodable
	}

	directiveJSON, err := json.Marshal(directive)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := writeJSONPart(w, "directive", directiveJSON); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	writeMultipart(c, protocolVersion, w.Boundary(), body.Bytes())
	return nil
}

func writeJSONPart(w *multipart.Writer, name string, payload []byte) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, name))
	header.Set("Content-Type", "application/json; charset=utf-8")
	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(payload)
	return err
}

func writeMultipart(c *gin.Context, protocolVersion int, boundary string, body []byte) {
	c.Header(HeaderProtocolVersion, strconv.Itoa(protocolVersion))
	c.Header(HeaderSFVVersion, "0")
	c.Header("cache-control", "private, max-age=0")
	c.Data(http.StatusOK, "multipart/mixed; boundary="+boundary, body)
}
