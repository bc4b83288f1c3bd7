package probes

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/maddsua/loginprobe/config"
	socks "github.com/maddsua/loginprobe/proxy"
	"github.com/maddsua/loginprobe/report"
	"golang.org/x/net/proxy"
)

type Prober interface {
	Do(ctx context.Context, attempt LoginAttempt, writer report.Writer) error
}

// LoginAttempt is a single set of credentials to try, with a label for the report
type LoginAttempt struct {
	Identifier  string `validate:"required"`
	Secret      string `validate:"required"`
	Description string
}

func AttemptsFromConfig(entries []config.AttemptConfig) []LoginAttempt {

	result := make([]LoginAttempt, len(entries))
	for idx, val := range entries {
		result[idx] = LoginAttempt{
			Identifier:  val.Identifier,
			Secret:      val.Secret,
			Description: val.Description,
		}
	}

	return result
}

func loadProxy(proxyKey string, proxies config.ProxyConfigMap) (proxy.ContextDialer, error) {

	if len(proxies) == 0 {
		return nil, errors.New("no proxies defined in the config")
	}

	proxyCfg, has := proxies[proxyKey]
	if !has || proxyCfg == nil {
		return nil, errors.New("proxy tag not found")
	}

	proxyUrl, err := url.Parse(proxyCfg.Url)
	if err != nil {
		return nil, fmt.Errorf("proxy url invalid: %s", err.Error())
	}

	dialer, err := socks.NewDialer(proxyUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy dialer: %s", err.Error())
	}

	return dialer, nil
}
