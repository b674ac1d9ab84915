package menu

import "fmt"

// Node ids double as transition tokens and are part of the callback
// protocol; changing them invalidates buttons in already-sent messages.
const (
	NodeRoot     = "root"
	NodeVisa     = "visa"
	NodeTransfer = "transfer"
	NodeMethod   = "method"
	NodeCrypto   = "crypto"
	NodeWire     = "wire"

	NodeGuideBasic = "guide_basic"
	NodeGuidePro   = "guide_pro"
	NodeGuideMore  = "guide_more"
)

var cardAmounts = []int{400, 500, 600, 700, 800}

// Storefront builds the customer-facing navigation tree: prepaid cards
// by denomination, transfers (crypto or wire), and the guides catalog.
func Storefront() (*Graph, error) {
	nodes := []Node{
		{
			ID:     NodeRoot,
			Prompt: "Hello! Would you like to order a prepaid card, make a transfer, or browse our guides?",
			Options: []Option{
				{Label: "💳 Prepaid cards", Token: NodeVisa},
				{Label: "💰 Transfers", Token: NodeTransfer},
				{Label: "📚 Guides", Token: NodeMethod},
			},
		},
		{
			ID:     NodeTransfer,
			Prompt: "Do you prefer a crypto transfer or a wire transfer?",
			Options: []Option{
				{Label: "Crypto", Token: NodeCrypto},
				{Label: "Wire transfer", Token: NodeWire},
			},
		},
		{
			ID:     NodeMethod,
			Prompt: "Choose a guide:",
			Options: []Option{
				{Label: "Starter guide", Token: NodeGuideBasic},
				{Label: "Pro guide", Token: NodeGuidePro},
				{Label: "🎯 More guides", Token: NodeGuideMore},
			},
		},
		{ID: NodeCrypto, Render: &Render{Template: TemplateCrypto}},
		{ID: NodeWire, Render: &Render{Template: TemplatePayment, Amount: "variable amount"}},
		{ID: NodeGuideBasic, Render: &Render{Template: TemplateMethods}},
		{ID: NodeGuidePro, Render: &Render{Template: TemplateMethods}},
		{ID: NodeGuideMore, Render: &Render{Template: TemplateMethods}},
	}

	visa := Node{
		ID:     NodeVisa,
		Prompt: "Which card amount would you like?",
	}
	for _, amount := range cardAmounts {
		token := fmt.Sprintf("%d", amount)
		visa.Options = append(visa.Options, Option{
			Label: fmt.Sprintf("💳 %d EUR card", amount),
			Token: token,
		})
		nodes = append(nodes, Node{
			ID:     token,
			Render: &Render{Template: TemplatePayment, Amount: fmt.Sprintf("%d EUR", amount)},
		})
	}
	nodes = append(nodes, visa)

	return New(NodeRoot, nodes)
}
