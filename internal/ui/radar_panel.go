package ui

// RenderRadarPanel wraps radar content with a styled border.
// The actual radar rendering lives in the radar package.
func RenderRadarPanel(width, height int, radarContent, legend string) string {
	content := radarContent + "\n" + legend
	return StylePanelActive.Width(width - 2).Height(height - 2).Render(content)
}
