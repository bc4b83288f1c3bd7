package socks

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/proxy"
)

// NewDialer returns a context dialer that tunnels connections through the proxy in proxyUrl.
// Only socks5 is supported, since that's all x/net/proxy speaks.
func NewDialer(proxyUrl *url.URL) (proxy.ContextDialer, error) {

	if proxyUrl == nil {
		return nil, errors.New("proxy url is nil")
	}

	switch strings.ToLower(proxyUrl.Scheme) {
	case "socks", "socks5", "socks5h":
		return newSocksDialer(proxyUrl.Host, proxyUrl.User)
	default:
		return nil, fmt.Errorf("unsupported proxy protocol '%s'", proxyUrl.Scheme)
	}
}

func newSocksDialer(host string, user *url.Userinfo) (proxy.ContextDialer, error) {

	var proxyAuth *proxy.Auth
	if user != nil && user.Username() != "" {

		proxyAuth = &proxy.Auth{User: user.Username()}

		if pass, has := user.Password(); has {
			proxyAuth.Password = pass
		}
	}

	dialer, err := proxy.SOCKS5("tcp", host, proxyAuth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	ctxDialer, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, errors.New("socks dialer does not support contexts")
	}

	return ctxDialer, nil
}
