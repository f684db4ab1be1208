package authhandler

import "github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/plugin"

// Handler名
const (
	HandlerDefault  = "default"
	HandlerFirewall = "firewall"
	HandlerVLAN     = "vlan"
)

// NewRegistry はdefault（デフォルト）、firewall、vlanを登録したRegistryを生成する。
func NewRegistry() *plugin.Registry[Handler] {
	r := plugin.NewRegistry[Handler]("auth_handler", HandlerDefault, func() (Handler, error) {
		return NewDefaultHandler(), nil
	})
	r.Register(HandlerFirewall, func() (Handler, error) {
		return NewFirewallHandler(), nil
	})
	r.Register(HandlerVLAN, func() (Handler, error) {
		return NewVLANHandler(), nil
	})
	return r
}
