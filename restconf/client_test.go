package restconf_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yangwire "github.com/reoring/yangwire"
	"github.com/reoring/yangwire/openroadm"
	"github.com/reoring/yangwire/restconf"
)

// recorder answers every request with a canned response and keeps the
// requests it saw.
type recorder struct {
	status int
	body   string
	seen   []*restconf.Request
}

func (r *recorder) Do(_ context.Context, req *restconf.Request) (*restconf.Response, error) {
	r.seen = append(r.seen, req)
	return &restconf.Response{StatusCode: r.status, Header: http.Header{}, Body: []byte(r.body)}, nil
}

func (r *recorder) last() *restconf.Request { return r.seen[len(r.seen)-1] }

func newClient(t *testing.T, rec *recorder, opts ...restconf.Option) *restconf.Client {
	t.Helper()
	return restconf.NewClient(mapper(t), rec, opts...)
}

var otsIface = restconf.Keyed[openroadm.Interface](device, openroadm.InterfaceKey{Name: ptr("ots-deg1")})

func TestClient_Read(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `{"org-openroadm-device:interface":[{` +
		`"name":"ots-deg1","type":"iana-if-type:opticalTransport","administrative-state":"inService",` +
		`"org-openroadm-optical-transport-interfaces:ots":{"fiber-type":"smf"}}]}`}
	c := newClient(t, rec)

	var got openroadm.Interface
	res, err := c.Read(context.Background(), otsIface, "roadm-a", &got)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Empty(t, res.Issues)

	req := rec.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rests/data/network-topology:network-topology/topology=topology-netconf/node=roadm-a/yang-ext:mount"+
		"/org-openroadm-device:org-openroadm-device/interface=ots-deg1", req.Path)
	assert.Equal(t, "application/yang-data+json", req.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get("Content-Type"))
	assert.Equal(t, restconf.DefaultTimeout, req.Timeout)

	require.NotNil(t, got.Name)
	assert.Equal(t, "ots-deg1", *got.Name)
	require.NotNil(t, got.AdministrativeState)
	assert.Equal(t, openroadm.AdminInService, *got.AdministrativeState)
	assert.Equal(t, yangwire.IdentityOf[openroadm.OpticalTransport](), got.Type)
}

func TestClient_ReadNotFound(t *testing.T) {
	rec := &recorder{status: http.StatusNotFound}
	var got openroadm.Info
	res, err := newClient(t, rec).Read(context.Background(), restconf.Child[openroadm.Info](device), "", &got)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Nil(t, got.Vendor)
	assert.Equal(t, "/rests/data/org-openroadm-device:org-openroadm-device/info", rec.last().Path)
}

func TestClient_ReadRejects(t *testing.T) {
	rec := &recorder{status: http.StatusOK}
	c := newClient(t, rec)
	ctx := context.Background()

	var info openroadm.Info
	_, err := c.Read(ctx, restconf.Child[openroadm.OrgOpenroadmDevice](device), "", &info)
	require.Error(t, err)

	var leaves []string
	res, err := c.Read(ctx, restconf.Leaf(otsIface, "SupportingInterfaceList"), "", &leaves)
	require.Error(t, err)
	assert.True(t, res.LeafList)
	assert.Empty(t, rec.seen)
}

func TestClient_StatusError(t *testing.T) {
	rec := &recorder{status: http.StatusInternalServerError, body: "boom"}
	var info openroadm.Info
	_, err := newClient(t, rec).Read(context.Background(), restconf.Child[openroadm.Info](device), "", &info)
	var se *restconf.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "boom", se.Body)
	assert.False(t, restconf.IsNotFound(err))
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_ReadLeaves(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `{"org-openroadm-device:supporting-interface-list":["oms-deg1","ots-deg1"]}`}
	vals, res, err := restconf.ReadLeaves[string](context.Background(), newClient(t, rec),
		restconf.Leaf(otsIface, "SupportingInterfaceList"), "")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, res.LeafList)
	assert.Equal(t, []string{"oms-deg1", "ots-deg1"}, vals)
	assert.Equal(t, "/rests/data/org-openroadm-device:org-openroadm-device/interface=ots-deg1/supporting-interface-list", rec.last().Path)
}

func TestClient_Writes(t *testing.T) {
	rec := &recorder{status: http.StatusNoContent}
	c := newClient(t, rec, restconf.WithBase("/restconf"), restconf.WithHeader("X-Trace", "t1"))
	ctx := context.Background()
	info := restconf.Child[openroadm.Info](device)
	v := openroadm.Info{Vendor: ptr("acme")}

	res, err := c.Put(ctx, info, "", v)
	require.NoError(t, err)
	assert.True(t, res.Found)
	req := rec.last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/restconf/data/org-openroadm-device:org-openroadm-device/info", req.Path)
	assert.Equal(t, "application/yang-data+json", req.Header.Get("Content-Type"))
	assert.Equal(t, "t1", req.Header.Get("X-Trace"))
	assert.Contains(t, string(req.Body), `"vendor":"acme"`)
	assert.Contains(t, string(req.Body), `"org-openroadm-device:info"`)

	_, err = c.Merge(ctx, info, "", v)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.last().Method)

	rec.status = http.StatusNotFound
	require.NoError(t, c.Delete(ctx, info, ""))
	assert.Equal(t, http.MethodDelete, rec.last().Method)
	assert.Empty(t, rec.last().Body)
	assert.Len(t, rec.seen, 3)
}

func TestClient_Invoke(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `{"org-openroadm-device:output":{"status":"Successful","status-message":"led on"}}`}
	c := newClient(t, rec)

	in := openroadm.LedControlInput{ShelfName: ptr("1"), CircuitPackName: ptr("1/0"), Enabled: ptr(true)}
	var out openroadm.LedControlOutput
	res, err := c.Invoke(context.Background(), "org-openroadm-device:led-control", "", in, &out)
	require.NoError(t, err)
	assert.True(t, res.Found)

	req := rec.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/rests/operations/org-openroadm-device:led-control", req.Path)
	assert.JSONEq(t, `{"org-openroadm-device:input":{"shelf-name":"1","circuit-pack-name":"1/0","enabled":true}}`, string(req.Body))

	require.NotNil(t, out.Status)
	assert.Equal(t, openroadm.RpcSuccessful, *out.Status)
	require.NotNil(t, out.StatusMessage)
	assert.Equal(t, "led on", *out.StatusMessage)

	rec.status = http.StatusNotFound
	_, err = c.Invoke(context.Background(), "org-openroadm-device:led-control", "", nil, nil)
	assert.True(t, restconf.IsNotFound(err))
}

func TestClient_XMLCodec(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `<info xmlns="http://org/openroadm/device"><vendor>acme</vendor></info>`}
	m := mapper(t)
	codec, ok := restconf.CodecByName("xml", m.Registry())
	require.True(t, ok)
	c := restconf.NewClient(m, rec, restconf.WithCodec(codec), restconf.WithTimeout(time.Second))

	var got openroadm.Info
	res, err := c.Read(context.Background(), restconf.Child[openroadm.Info](device), "", &got)
	require.NoError(t, err)
	assert.True(t, res.Found)
	require.NotNil(t, got.Vendor)
	assert.Equal(t, "acme", *got.Vendor)
	assert.Equal(t, "application/yang-data+xml", rec.last().Header.Get("Accept"))
	assert.Equal(t, time.Second, rec.last().Timeout)

	_, ok = restconf.CodecByName("yaml", m.Registry())
	assert.False(t, ok)
}

func TestHTTPTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"org-openroadm-device:info":{"vendor":"acme"}}`))
	}))
	defer srv.Close()

	tr := &restconf.HTTPTransport{BaseURL: srv.URL + "/", Username: "admin", Password: "secret"}
	c := restconf.NewClient(mapper(t), tr)
	var got openroadm.Info
	res, err := c.Read(context.Background(), restconf.Child[openroadm.Info](device), "", &got)
	require.NoError(t, err)
	assert.True(t, res.Found)
	require.NotNil(t, got.Vendor)
	assert.Equal(t, "acme", *got.Vendor)

	tr.Password = "wrong"
	_, err = c.Read(context.Background(), restconf.Child[openroadm.Info](device), "", &got)
	var se *restconf.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}
