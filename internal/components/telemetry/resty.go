package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	report_resty_request  = "resty.request"
	report_resty_response = "resty.response"
)

// RequestIdHeader carries a per-request uuid so client and server logs can be correlated.
const RequestIdHeader = "X-Request-Id"

type instrumentResty struct {
	tel       API
	idcounter *uint64
}

// InstrumentResty reports every request made by `client` to `tel`, it must be
// called after any other OnBeforeRequest hooks that may fail (ex. rate limiting)
// have been registered.
func InstrumentResty(client *resty.Client, tel API) {
	var idcounter uint64
	i := instrumentResty{tel: tel, idcounter: &idcounter}

	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type reqCtxKeyType int

var reqCtxKey reqCtxKeyType

type reqCtx struct {
	id        uint64
	requestId string
	startTime time.Time
}

func (i instrumentResty) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()

	rc := reqCtx{
		id:        atomic.AddUint64(i.idcounter, 1),
		requestId: uuid.NewString(),
		startTime: time.Now(),
	}
	req.SetHeader(RequestIdHeader, rc.requestId)
	i.tel.ReportDebug(report_resty_request, rc.id, rc.requestId, req.Method, req.URL)

	req.SetContext(context.WithValue(ctx, reqCtxKey, rc))
	return nil
}

func (i instrumentResty) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	rc, ok := res.Request.Context().Value(reqCtxKey).(reqCtx)
	if !ok {
		i.tel.ReportDebug(report_resty_response, res.Request.Method, res.Request.URL, res.Status())
		return nil
	}

	i.tel.ReportDebug(
		report_resty_response,
		rc.id,
		time.Since(rc.startTime).String(),
		res.Status(),
	)
	return nil
}

func (i instrumentResty) onError(req *resty.Request, err error) {
	params := []any{err, req.Method, req.URL}
	rc, ok := req.Context().Value(reqCtxKey).(reqCtx)
	if ok {
		params = append(params, rc.requestId, time.Since(rc.startTime))
	}

	// resty wraps errors raised after a response arrived (ex. by a response hook) in
	// ResponseError, the server was reached so it is not a transport failure.
	if _, isResponse := err.(*resty.ResponseError); isResponse {
		i.tel.ReportDebug(report_resty_response, params...)
		return
	}
	i.tel.ReportBroken(report_resty_response, params...)
}
