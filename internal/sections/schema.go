// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sections owns the section content model: the closed registry
// of section types, their typed content schemas with built-in defaults,
// lenient decoding of stored JSON documents, write-boundary validation,
// and the structural edit operations used by the admin editor.
package sections

// Type identifies a registered section type. The set is closed: new
// types require a schema, defaults, and a template partial.
type Type string

const (
	// Types composing the portfolio homepage.
	TypeHero     Type = "hero"
	TypeAbout    Type = "about"
	TypeSkills   Type = "skills"
	TypeTimeline Type = "timeline"
	TypeProjects Type = "projects"
	TypeContact  Type = "contact"

	// Types composing case-study pages.
	TypeOverview   Type = "overview"
	TypeProblem    Type = "problem"
	TypeProcess    Type = "process"
	TypeShowcase   Type = "showcase"
	TypeReflection Type = "reflection"
)

// HeroContent is the opening banner of the portfolio.
type HeroContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
	ImageURL string `json:"imageUrl"`
}

// AboutHighlight is one of the capability cards in the about section.
type AboutHighlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// AboutContent is the personal story section.
type AboutContent struct {
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle"`
	Description []string         `json:"description"`
	Image       string           `json:"image"`
	Skills      []AboutHighlight `json:"skills"`
}

// Skill is a single named skill with a proficiency percentage (0-100).
type Skill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// SkillCategory groups skills under a named, themed card.
type SkillCategory struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Icon   string  `json:"icon"`
	Color  string  `json:"color"`
	Skills []Skill `json:"skills"`
}

// Tool is an entry in the tools strip of the skills section.
type Tool struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SkillsContent is the skills section: categorized skill bars plus a
// row of everyday tools.
type SkillsContent struct {
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Categories []SkillCategory `json:"categories"`
	Tools      []Tool          `json:"tools"`
}

// Experience is one stop on the career timeline.
type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

// TimelineContent is the career journey section.
type TimelineContent struct {
	Title       string       `json:"title"`
	Experiences []Experience `json:"experiences"`
}

// ProjectsContent holds the heading of the projects grid. The project
// cards themselves come from the projects table, not section content.
type ProjectsContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// SocialLink is an entry in the contact section's social row.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ContactContent is the contact section with form heading and details.
type ContactContent struct {
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Description string       `json:"description"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Address     string       `json:"address"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

// Snapshot summarizes a case study at a glance.
type Snapshot struct {
	Timeline string `json:"timeline"`
	Team     string `json:"team"`
	Role     string `json:"role"`
	Goal     string `json:"goal"`
}

// Outcome is a headline metric of a case study.
type Outcome struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OverviewContent opens a case study with its snapshot and outcomes.
type OverviewContent struct {
	Title           string    `json:"title"`
	ProjectSnapshot Snapshot  `json:"projectSnapshot"`
	KeyOutcomes     []Outcome `json:"keyOutcomes"`
}

// Persona describes the representative user of a case study.
type Persona struct {
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Occupation     string   `json:"occupation"`
	Location       string   `json:"location"`
	FavoriteGhibli string   `json:"favoriteGhibli"`
	ImageURL       string   `json:"imageUrl"`
	Goals          []string `json:"goals"`
	Frustrations   []string `json:"frustrations"`
}

// Competitor is one row of the competitive analysis table.
type Competitor struct {
	Platform    string `json:"platform"`
	Strengths   string `json:"strengths"`
	Weaknesses  string `json:"weaknesses"`
	Opportunity string `json:"opportunity"`
}

// ProblemContent frames the challenge a case study addresses.
type ProblemContent struct {
	Title               string       `json:"title"`
	ProblemStatement    string       `json:"problemStatement"`
	ResearchInsight     string       `json:"researchInsight"`
	KeyInsights         []string     `json:"keyInsights"`
	Persona             Persona      `json:"persona"`
	CompetitiveAnalysis []Competitor `json:"competitiveAnalysis"`
}

// IdeationItem is one artifact of the ideation gallery.
type IdeationItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// EvolutionStage is a step in the design fidelity progression.
type EvolutionStage struct {
	Stage    string `json:"stage"`
	ImageURL string `json:"imageUrl"`
}

// Phase is a dated milestone of the project timeline.
type Phase struct {
	Phase       string `json:"phase"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ProcessContent documents how the case-study work was done.
type ProcessContent struct {
	Title           string           `json:"title"`
	Ideation        []IdeationItem   `json:"ideation"`
	DesignEvolution []EvolutionStage `json:"designEvolution"`
	Timeline        []Phase          `json:"timeline"`
}

// Feature is a highlighted capability of the shipped product.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Testimonial is a quoted reaction with a 1-5 rating. The rating is a
// float because half-star ratings like 4.8 appear in real content.
type Testimonial struct {
	Quote  string  `json:"quote"`
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
}

// ShowcaseContent presents the final results of a case study.
type ShowcaseContent struct {
	Title        string        `json:"title"`
	Features     []Feature     `json:"features"`
	Testimonials []Testimonial `json:"testimonials"`
}

// Acknowledgment credits a team for its contribution.
type Acknowledgment struct {
	Name         string `json:"name"`
	Contribution string `json:"contribution"`
}

// ReflectionContent closes a case study with learnings and next steps.
type ReflectionContent struct {
	Title               string           `json:"title"`
	Learnings           []string         `json:"learnings"`
	NextSteps           []string         `json:"nextSteps"`
	TeamAcknowledgments []Acknowledgment `json:"teamAcknowledgments"`
}
