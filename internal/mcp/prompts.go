package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("design_newsletter",
		mcp.WithPromptDescription("Guide through building a newsletter email on the active page"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Topic or title of the newsletter"),
			mcp.RequiredArgument(),
		),
	), s.handleNewsletterPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("promo_email",
		mcp.WithPromptDescription("Build a promotional email with a hero, product and call to action"),
		mcp.WithArgument("product",
			mcp.ArgumentDescription("Product or offer being promoted"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("link",
			mcp.ArgumentDescription("Landing page URL for the button"),
			mcp.RequiredArgument(),
		),
	), s.handlePromoPrompt)
}

func (s *Server) handleNewsletterPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Design a newsletter about: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Design a newsletter about "%s" on the active page. Follow these steps:

1. Use add_layout with layoutId 1 to insert a header and content section
2. Replace the placeholder copy with update_element: the heading should read "%s"
3. Add a two-column section with add_layout 2 for secondary stories
4. Finish with add_layout 6 for the footer and social links
5. Check the result with render_preview, then save_template with a descriptive name

Keep the canvas 600 units wide; nothing should extend past x + width = 600.`, topic, topic),
				},
			},
		},
	}, nil
}

func (s *Server) handlePromoPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	product := req.Params.Arguments["product"]
	link := req.Params.Arguments["link"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Promotional email for %s", product),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a promotional email for "%s". Follow these steps:

1. Start from add_layout 4 (hero banner) and set the heading to the offer
2. Insert add_layout 5 (product showcase) and describe %s in the paragraphs
3. Point every button at %s using update_element with {"link": "%s"}
4. Use apply_color or apply_gradient on the hero band to match the brand
5. Review with render_preview and save`, product, product, link, link),
				},
			},
		},
	}, nil
}
