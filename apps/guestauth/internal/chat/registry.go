package chat

import "github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/plugin"

// Transport名
const (
	TransportUDP     = "udp"
	TransportValkey  = "valkey"
	TransportWebhook = "webhook"
	TransportXMPP    = "xmpp"
)

// NewRegistry はudp（デフォルト）と、valkey・webhook・xmppを登録したRegistryを生成する。
func NewRegistry() *plugin.Registry[Transport] {
	r := plugin.NewRegistry[Transport]("chat", TransportUDP, func() (Transport, error) {
		return NewUDPTransport(), nil
	})
	r.Register(TransportValkey, func() (Transport, error) {
		return NewValkeyTransport(), nil
	})
	r.Register(TransportWebhook, func() (Transport, error) {
		return NewWebhookTransport(), nil
	})
	r.Register(TransportXMPP, func() (Transport, error) {
		return NewXMPPTransport(), nil
	})
	return r
}
