package sse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astock/pkg/config"
	"astock/pkg/provider/core"
)

func newTestProvider() *Provider {
	return New(config.SourceConfig{
		Timeout:    3 * time.Second,
		MaxRetries: 0,
		RateLimit:  0,
		UserAgent:  "test",
	})
}

func TestFetchMarginDetail(t *testing.T) {
	t.Run("字段映射为原生列名", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, refererHeader, r.Header.Get("Referer"), "上交所接口需要来源页")
			assert.Equal(t, "20250106", r.URL.Query().Get("detailsDate"))
			fmt.Fprint(w, `{"result":[{"opDate":"20250106","securityCode":"600000","securityAbbr":"浦发银行","rzye":"13824247612","rzmre":"244518517","rzche":"331511615","rqyl":"2036400","rqmcl":"281400","rqchl":"184700","validateCode":"x"}]}`)
		}))
		defer server.Close()

		p := newTestProvider()
		p.marginURL = server.URL

		rows, err := p.FetchMarginDetail(context.Background(), "20250106")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "20250106", rows[0]["信用交易日期"])
		assert.Equal(t, "600000", rows[0]["标的证券代码"])
		assert.Equal(t, "浦发银行", rows[0]["标的证券简称"])
		assert.Equal(t, "13824247612", rows[0]["融资余额"])
		assert.NotContains(t, rows[0], "validateCode", "映射外的字段不透传")
	})

	t.Run("空结果返回空切片", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"result":[]}`)
		}))
		defer server.Close()

		p := newTestProvider()
		p.marginURL = server.URL

		rows, err := p.FetchMarginDetail(context.Background(), "20250101")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("上游错误归为上游错误类别", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		p := newTestProvider()
		p.marginURL = server.URL

		_, err := p.FetchMarginDetail(context.Background(), "20250106")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUpstream)
	})
}
