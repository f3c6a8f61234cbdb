package scholar

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBlock_UnusualTraffic(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}
	body := []byte("Our systems have detected Unusual Traffic from your network")
	blocked, marker := DetectBlock(resp, body)
	assert.True(t, blocked)
	assert.Equal(t, "unusual_traffic", marker)
}

func TestDetectBlock_Captcha(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}
	body := []byte("<form>please solve this reCAPTCHA</form>")
	blocked, marker := DetectBlock(resp, body)
	assert.True(t, blocked)
	assert.Equal(t, "captcha", marker)
}

func TestDetectBlock_Cloudflare403(t *testing.T) {
	resp := &http.Response{
		StatusCode: 403,
		Header:     http.Header{"Cf-Ray": {"abc123"}},
	}
	blocked, marker := DetectBlock(resp, nil)
	assert.True(t, blocked)
	assert.Equal(t, "cloudflare", marker)
}

func TestDetectBlock_CleanPage(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}
	body := []byte("<html><body><table id=\"gsc_mvt_table\"></table></body></html>")
	blocked, _ := DetectBlock(resp, body)
	assert.False(t, blocked)
}

func TestDetectBlock_NilResponse(t *testing.T) {
	blocked, marker := DetectBlock(nil, []byte("ordinary body"))
	assert.False(t, blocked)
	assert.Equal(t, "", marker)
}
