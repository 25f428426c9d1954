package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"kashbill/internal/domain/entities"
)

func (m Model) t(key string) string {
	return m.deps.Locale.Resolve(key)
}

func (m Model) localized(text entities.LocalizedText) string {
	return text.In(m.deps.Locale.ActiveLocale(), m.deps.Locale.Supported()[0])
}

func (m Model) renderHeader(mounted entities.PageID) string {
	items := []string{logoStyle.Render(m.deps.Site.Name)}
	for _, item := range navItems {
		style := navStyle
		if item.page == mounted {
			style = navActiveStyle
		}
		items = append(items, style.Render(m.t(item.key)))
	}
	items = append(items,
		navStyle.Render(m.t("nav.contact")+" "+m.deps.Site.Contact.Email),
		toggleStyle.Render(m.deps.Locale.Next().Label()),
	)
	return headerStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Center, items...))
}

func (m Model) renderFooter() string {
	return footerStyle.Render(m.deps.Locale.Render("footer.copyright", map[string]any{
		"Year": m.deps.Now().Year(),
		"Name": m.deps.Site.Name,
	}))
}

func (m Model) renderPage(page entities.PageID, path string) string {
	switch page {
	case entities.PageLog:
		return m.renderLog()
	case entities.PageWorks:
		return m.renderWorks()
	case entities.PageLab:
		return m.renderLab()
	case entities.PageBio:
		return m.renderBio()
	case entities.PageNotFound:
		return m.renderNotFound(path)
	case "":
		return ""
	default:
		return mutedStyle.Render(string(page))
	}
}

func (m Model) renderLog() string {
	site := m.deps.Site
	var b strings.Builder
	for _, line := range site.Headline {
		b.WriteString(headlineStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(min(m.width, 80)).Render(m.localized(site.Tagline)))
	b.WriteString("\n\n")

	status := lipgloss.NewStyle().Foreground(statusColor(site.Status.Color)).Render("● " + site.Status.Value)
	b.WriteString(mutedStyle.Render(site.Status.Label+" ") + status + "\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statStyle.Render(mutedStyle.Render(m.t("home.cpuLoad"))+"\n"+site.Stats.CPULoad),
		statStyle.Render(mutedStyle.Render(m.t("home.latency"))+"\n"+site.Stats.Latency),
		statStyle.Render(mutedStyle.Render(m.t("home.projects"))+"\n"+site.Stats.Projects),
	))
	b.WriteString("\n\n")
	b.WriteString(accentStyle.Render(m.t("home.explore") + " → " + m.t("lab.title") + " · " + m.t("works.title")))
	return b.String()
}

func (m Model) renderWorks() string {
	categories := m.deps.Works.Categories()
	current := categories[m.category%len(categories)]

	chips := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == current {
			chips = append(chips, chipActiveStyle.Render(c))
		} else {
			chips = append(chips, chipStyle.Render(c))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(m.t("works.title"))))
	b.WriteString(" ")
	b.WriteString(headlineStyle.Render("[V.2.0]"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.t("works.session")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.t("works.filter")+": ") + lipgloss.JoinHorizontal(lipgloss.Center, chips...))
	b.WriteString("\n")

	projects, err := m.deps.Works.Filter(current)
	if err != nil {
		m.deps.Logger.Warn("works filter failed", zap.Error(err))
		b.WriteString(errorStyle.Render(m.errorNotice(err, nil)))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(m.deps.Locale.Render("works.count", map[string]any{"Count": len(projects)})))
	b.WriteString("\n")
	if len(projects) == 0 {
		b.WriteString(mutedStyle.Render(m.t("works.empty")))
		return b.String()
	}

	cards := make([]string, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, m.renderProject(p))
	}
	rows := []string{}
	for i := 0; i < len(cards); i += 2 {
		end := min(i+2, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

func (m Model) renderProject(p entities.Project) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	if p.Featured {
		b.WriteString(" " + headlineStyle.Render(m.t("works.featured")))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(p.Category))
	b.WriteString("\n")
	b.WriteString(p.Description)
	b.WriteString("\n")
	b.WriteString(accentStyle.Render(strings.Join(p.Tags, " · ")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(p.AudioSpec))
	if p.VideoURL != "" {
		b.WriteString("\n▶ " + p.VideoURL)
	}
	return cardStyle.Render(b.String())
}

func (m Model) renderLab() string {
	lab := m.deps.Lab

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.t("lab.title")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.t("lab.system")))
	b.WriteString("\n\n")

	lcd := lcdStyle.Render(mutedStyle.Render(m.t("lab.lastTriggered")) + "\n" +
		accentStyle.Bold(true).Render(lab.Display(m.t("lab.ready"))))

	env := m.t("lab.off")
	if lab.EnvironmentOn() {
		env = m.t("lab.on")
	}
	layers := titleStyle.Render(m.t("lab.layers")) + "\n" +
		fmt.Sprintf("%s  [%s]\n%s  [%s]", m.t("lab.warehouse"), env, m.t("lab.vinyl"), m.t("lab.off"))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lcd, "  ", layers))
	b.WriteString("\n\n")

	active := lab.ActivePad()
	pads := m.deps.Site.Pads
	rows := []string{}
	for i := 0; i < len(pads); i += 4 {
		end := min(i+4, len(pads))
		cells := make([]string, 0, 4)
		for _, pad := range pads[i:end] {
			cells = append(cells, renderPad(pad, pad.ID == active))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

func renderPad(pad entities.SoundPad, active bool) string {
	text := fmt.Sprintf("%s\n%s\n[%s]", pad.ID, pad.Label, pad.Key)
	if active {
		return padActiveStyle.Background(padColor(pad.Color)).Render(text)
	}
	return padStyle.Foreground(padColor(pad.Color)).Render(text)
}

func (m Model) renderBio() string {
	site := m.deps.Site
	roles := strings.Split(site.Role, " // ")
	role := roles[0]
	if len(roles) > 1 {
		role += " // " + roles[1]
	} else {
		role += " // CREATIVE"
	}

	paragraphs := make([]string, 0, len(site.Bio))
	for _, p := range site.Bio {
		paragraphs = append(paragraphs, m.localized(p))
	}
	text := strings.Join(paragraphs, "\n\n")
	if m.bio != nil {
		if rendered, err := m.bio.Render(text); err == nil {
			text = strings.TrimRight(rendered, "\n")
		} else {
			m.deps.Logger.Warn("bio markdown render failed", zap.Error(err))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.t("bio.heading")))
	b.WriteString("\n")
	b.WriteString(headlineStyle.Render(site.Name))
	b.WriteString("\n")
	b.WriteString(accentStyle.Render(role))
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(m.t("bio.contact")+": ") + site.Contact.Email)
	if site.Contact.LinkedIn != "" {
		b.WriteString("\n" + mutedStyle.Render("LinkedIn: ") + site.Contact.LinkedIn)
	}
	if site.Contact.Resume != "" {
		b.WriteString("\n" + mutedStyle.Render(m.t("bio.resume")+": ") + site.Contact.Resume)
	}
	return b.String()
}

func (m Model) renderNotFound(path string) string {
	return titleStyle.Render(m.t("notFound.title")) + "\n" +
		mutedStyle.Render(m.deps.Locale.Render("notFound.body", map[string]any{"Path": path}))
}
