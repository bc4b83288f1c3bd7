package probes

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maddsua/loginprobe/config"
	"github.com/maddsua/loginprobe/report"
	"github.com/maddsua/loginprobe/utils"
)

const (
	userAgent       = "loginprobe"
	requestIDHeader = "X-Request-ID"
)

func NewLoginProbe(opts config.TargetConfig, proxies config.ProxyConfigMap) (*LoginProbe, error) {

	targetUrl, err := url.Parse(opts.Url)
	if err != nil {
		return nil, err
	}

	if targetUrl.Scheme == "" {
		targetUrl.Scheme = "http"
	}

	identifierField := opts.IdentifierField
	if identifierField == "" {
		identifierField = config.DefaultIdentifierField
	}

	secretField := opts.SecretField
	if secretField == "" {
		secretField = config.DefaultSecretField
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if opts.SkipTlsVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if opts.Proxy != "" {

		proxy, err := loadProxy(opts.Proxy, proxies)
		if err != nil {
			return nil, err
		}

		//	the env proxy would otherwise be tried before the socks tunnel
		transport.Proxy = nil
		transport.DialContext = proxy.DialContext
	}

	return &LoginProbe{
		target:          targetUrl,
		identifierField: identifierField,
		secretField:     secretField,
		headers:         opts.Headers,
		timeout:         opts.Timeout(),
		client:          &http.Client{Transport: transport},
	}, nil
}

// LoginProbe posts credentials to a login endpoint and hands whatever comes back to a report writer.
// It never interprets the response.
type LoginProbe struct {
	target          *url.URL
	identifierField string
	secretField     string
	headers         map[string]string
	timeout         time.Duration
	client          *http.Client
}

func (this *LoginProbe) Target() string {
	return this.target.String()
}

// Do runs one attempt. Transport failures end up in the report rather than in the returned error;
// an error here means the attempt was invalid or the report could not be written.
func (this *LoginProbe) Do(ctx context.Context, attempt LoginAttempt, writer report.Writer) error {

	if writer == nil {
		return errors.New("report writer is nil")
	}

	if err := utils.ValidateStruct(attempt); err != nil {
		return fmt.Errorf("invalid login attempt: %s", err.Error())
	}

	label := attempt.Description
	if label == "" {
		label = attempt.Identifier
	}

	outcome := this.send(ctx, attempt)
	outcome.Label = label

	slog.Debug("login probe "+label,
		slog.String("request_id", outcome.RequestID),
		slog.Int("http_status", outcome.StatusCode),
		slog.Duration("elapsed", outcome.Elapsed))

	if err := writer.WriteOutcome(ctx, outcome); err != nil {
		return fmt.Errorf("report.WriteOutcome: %v", err)
	}

	return nil
}

func (this *LoginProbe) send(ctx context.Context, attempt LoginAttempt) report.Outcome {

	outcome := report.Outcome{
		RequestID: uuid.NewString(),
		Time:      time.Now(),
	}

	var setErr = func(err error) report.Outcome {
		outcome.Err = err
		outcome.Elapsed = time.Since(outcome.Time)
		return outcome
	}

	payload, err := this.encodePayload(attempt)
	if err != nil {
		return setErr(err)
	}

	if this.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, this.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, this.target.String(), bytes.NewReader(payload))
	if err != nil {
		return setErr(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, outcome.RequestID)

	for key, val := range this.headers {

		if strings.ToLower(key) == "host" {
			req.Host = val
			continue
		}

		req.Header.Set(key, val)
	}

	resp, err := this.client.Do(req)
	if err != nil {

		slog.Debug("login probe request failed",
			slog.String("request_id", outcome.RequestID),
			slog.String("err", err.Error()))

		return setErr(err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return setErr(err)
	}

	outcome.StatusCode = resp.StatusCode
	outcome.Body = body
	outcome.Elapsed = time.Since(outcome.Time)

	return outcome
}

// encodePayload keeps the identifier field ahead of the secret,
// which a map passed to json.Marshal wouldn't guarantee
func (this *LoginProbe) encodePayload(attempt LoginAttempt) ([]byte, error) {

	var buff bytes.Buffer

	var writeString = func(val string) error {
		token, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buff.Write(token)
		return nil
	}

	buff.WriteByte('{')

	for idx, pair := range [][2]string{
		{this.identifierField, attempt.Identifier},
		{this.secretField, attempt.Secret},
	} {

		if idx > 0 {
			buff.WriteByte(',')
		}

		if err := writeString(pair[0]); err != nil {
			return nil, err
		}

		buff.WriteByte(':')

		if err := writeString(pair[1]); err != nil {
			return nil, err
		}
	}

	buff.WriteByte('}')

	return buff.Bytes(), nil
}

// RunAll runs attempts one after another. A failing attempt is logged and doesn't stop the rest.
func RunAll(ctx context.Context, prober Prober, attempts []LoginAttempt, writer report.Writer) error {

	var errs []error

	for idx, attempt := range attempts {

		if err := prober.Do(ctx, attempt, writer); err != nil {

			slog.Error("Login probe returned error",
				slog.Int("attempt", idx+1),
				slog.String("label", attempt.Description),
				slog.String("err", err.Error()))

			errs = append(errs, fmt.Errorf("attempt #%d: %w", idx+1, err))
		}
	}

	return errors.Join(errs...)
}
