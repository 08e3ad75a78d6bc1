// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sections

import (
	"encoding/json"
	"errors"
	"fmt"
)

// homeTypes and caseStudyTypes define the closed registry, in the
// order the type picker presents them.
var homeTypes = []Type{TypeHero, TypeAbout, TypeSkills, TypeTimeline, TypeProjects, TypeContact}

var caseStudyTypes = []Type{TypeOverview, TypeProblem, TypeProcess, TypeShowcase, TypeReflection}

// Types returns every registered section type, homepage types first.
func Types() []Type {
	all := make([]Type, 0, len(homeTypes)+len(caseStudyTypes))
	all = append(all, homeTypes...)
	all = append(all, caseStudyTypes...)
	return all
}

// HomeTypes returns the types that compose the portfolio homepage.
func HomeTypes() []Type {
	return append([]Type(nil), homeTypes...)
}

// CaseStudyTypes returns the types that compose case-study pages.
func CaseStudyTypes() []Type {
	return append([]Type(nil), caseStudyTypes...)
}

// Known reports whether t is a registered section type. Sections of
// unknown types are preserved and editable as raw JSON, but render
// nothing on the public site.
func Known(t Type) bool {
	switch t {
	case TypeHero, TypeAbout, TypeSkills, TypeTimeline, TypeProjects, TypeContact,
		TypeOverview, TypeProblem, TypeProcess, TypeShowcase, TypeReflection:
		return true
	}
	return false
}

// Label returns the human-readable name for a type, used in the admin
// section list and type picker.
func Label(t Type) string {
	switch t {
	case TypeHero:
		return "Hero"
	case TypeAbout:
		return "About"
	case TypeSkills:
		return "Skills"
	case TypeTimeline:
		return "Journey"
	case TypeProjects:
		return "Projects"
	case TypeContact:
		return "Contact"
	case TypeOverview:
		return "Overview"
	case TypeProblem:
		return "Problem"
	case TypeProcess:
		return "Process"
	case TypeShowcase:
		return "Showcase"
	case TypeReflection:
		return "Reflection"
	}
	return string(t)
}

// Defaults returns a fully populated content value for the type. Every
// scalar field carries the shipped copy and list fields carry starter
// items, so a section saved with {} still renders a complete design.
// Returns nil for unknown types.
func Defaults(t Type) any {
	switch t {
	case TypeHero:
		return defaultHero()
	case TypeAbout:
		return defaultAbout()
	case TypeSkills:
		return defaultSkills()
	case TypeTimeline:
		return defaultTimeline()
	case TypeProjects:
		return defaultProjects()
	case TypeContact:
		return defaultContact()
	case TypeOverview:
		return defaultOverview()
	case TypeProblem:
		return defaultProblem()
	case TypeProcess:
		return defaultProcess()
	case TypeShowcase:
		return defaultShowcase()
	case TypeReflection:
		return defaultReflection()
	}
	return nil
}

// Decode turns a stored content document into the typed value for t,
// starting from the defaults and overlaying whatever the document
// provides. Decoding is lenient by design: missing fields keep their
// defaults, unknown fields are ignored, and type-mismatched fields are
// skipped. Only malformed JSON is reported, and even then the returned
// value is the complete defaults — rendering must never fail because of
// a bad document.
//
// For unknown types Decode returns (nil, ErrUnknownType).
func Decode(t Type, raw json.RawMessage) (any, error) {
	switch t {
	case TypeHero:
		v := defaultHero()
		return v, overlay(raw, &v)
	case TypeAbout:
		v := defaultAbout()
		return v, overlay(raw, &v)
	case TypeSkills:
		v := defaultSkills()
		return v, overlay(raw, &v)
	case TypeTimeline:
		v := defaultTimeline()
		return v, overlay(raw, &v)
	case TypeProjects:
		v := defaultProjects()
		return v, overlay(raw, &v)
	case TypeContact:
		v := defaultContact()
		return v, overlay(raw, &v)
	case TypeOverview:
		v := defaultOverview()
		return v, overlay(raw, &v)
	case TypeProblem:
		v := defaultProblem()
		return v, overlay(raw, &v)
	case TypeProcess:
		v := defaultProcess()
		return v, overlay(raw, &v)
	case TypeShowcase:
		v := defaultShowcase()
		return v, overlay(raw, &v)
	case TypeReflection:
		v := defaultReflection()
		return v, overlay(raw, &v)
	}
	return nil, ErrUnknownType
}

// ErrUnknownType is returned when a type is not in the registry.
var ErrUnknownType = errors.New("sections: unknown section type")

// Encode produces the canonical JSON document for a typed content value.
func Encode(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode section content: %w", err)
	}
	return data, nil
}

// overlay unmarshals raw onto dst, which already holds the defaults.
// encoding/json skips type-mismatched fields and keeps decoding, so a
// wrong-shaped document degrades field by field instead of failing.
func overlay(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// Mismatched fields kept their defaults; the rest decoded fine.
		return nil
	}
	return fmt.Errorf("decode section content: %w", err)
}

func defaultHero() HeroContent {
	return HeroContent{
		Title:    "Crafting Products That Spark Joy & Magic",
		Subtitle: "A Product Manager's journey through enchanted user experiences and data-driven storytelling",
		CTAText:  "Begin the Journey",
		CTALink:  "#about",
		ImageURL: "/static/img/hero.jpg",
	}
}

func defaultAbout() AboutContent {
	return AboutContent{
		Title:    "My Story",
		Subtitle: "Once upon a time...",
		Description: []string{
			"A Product Manager set out to bridge user needs and business goals in the mystical land of technology. With a compass of curiosity and a map of metrics, I navigate through complex problems to deliver solutions that feel like magic.",
			"My journey began in the enchanted forests of UX design, where I learned to listen to the whispers of users. I then ventured into the mountains of data analysis, discovering patterns in the stars. Now, I craft product strategies that combine both art and science.",
		},
		Image: "/static/img/profile.jpg",
		Skills: []AboutHighlight{
			{Title: "Roadmap Wizardry", Description: "Turning visions into actionable plans", Icon: "route"},
			{Title: "Stargazer Alignment", Description: "Bringing teams together under one sky", Icon: "users"},
			{Title: "Metric Sorcery", Description: "Weaving data into compelling stories", Icon: "chart-line"},
			{Title: "Innovation Alchemy", Description: "Transforming ideas into gold", Icon: "lightbulb"},
		},
	}
}

func defaultSkills() SkillsContent {
	return SkillsContent{
		Title:    "My Magic Toolbox",
		Subtitle: "Enchanted Tools I Wield",
		Categories: []SkillCategory{
			{
				ID: "cat-1", Name: "Strategy & Vision", Icon: "fa-chess-queen", Color: "blue",
				Skills: []Skill{
					{ID: "skill-1", Name: "Product Vision", Percentage: 95},
					{ID: "skill-2", Name: "Roadmapping", Percentage: 90},
					{ID: "skill-3", Name: "OKRs", Percentage: 85},
				},
			},
			{
				ID: "cat-2", Name: "Execution", Icon: "fa-hammer", Color: "green",
				Skills: []Skill{
					{ID: "skill-4", Name: "Agile Methodologies", Percentage: 92},
					{ID: "skill-5", Name: "User Stories", Percentage: 88},
					{ID: "skill-6", Name: "Prioritization", Percentage: 90},
				},
			},
			{
				ID: "cat-3", Name: "Analytics", Icon: "fa-chart-pie", Color: "purple",
				Skills: []Skill{
					{ID: "skill-7", Name: "SQL", Percentage: 85},
					{ID: "skill-8", Name: "A/B Testing", Percentage: 80},
					{ID: "skill-9", Name: "Data Visualization", Percentage: 75},
				},
			},
			{
				ID: "cat-4", Name: "Leadership", Icon: "fa-users", Color: "yellow",
				Skills: []Skill{
					{ID: "skill-10", Name: "Team Building", Percentage: 88},
					{ID: "skill-11", Name: "Mentoring", Percentage: 92},
					{ID: "skill-12", Name: "Stakeholder Management", Percentage: 85},
				},
			},
		},
		Tools: []Tool{
			{ID: "tool-1", Name: "Jira", Icon: "fab fa-jira"},
			{ID: "tool-2", Name: "SQL", Icon: "fas fa-database"},
			{ID: "tool-3", Name: "Figma", Icon: "fab fa-figma"},
			{ID: "tool-4", Name: "Google Analytics", Icon: "fas fa-chart-bar"},
			{ID: "tool-5", Name: "Trello", Icon: "fab fa-trello"},
			{ID: "tool-6", Name: "Git", Icon: "fas fa-code-branch"},
		},
	}
}

func defaultTimeline() TimelineContent {
	return TimelineContent{
		Title: "My Journey",
		Experiences: []Experience{
			{
				Role: "Senior Product Manager", Company: "Enchanted Tech Inc.", Period: "2021-Present",
				Description: "Led the development of a magical onboarding experience that reduced time-to-value by 40%. Collaborated with wizards (engineers) and druids (designers) to craft intuitive user journeys.",
				Logo:        "/static/img/logo-enchanted.jpg",
			},
			{
				Role: "Product Manager", Company: "Mystical Startup", Period: "2018-2021",
				Description: "Scaled the product from 0 to 1M users by implementing a crystal-clear vision and data-driven decision making. Worked closely with the dragon (CEO) to align product strategy with business goals.",
				Logo:        "/static/img/logo-mystical.jpg",
			},
			{
				Role: "Associate PM", Company: "Forest Analytics", Period: "2016-2018",
				Description: "Learned the ancient arts of analytics and user research. Helped improve retention by 25% by identifying pain points in the user journey through careful observation and data analysis.",
				Logo:        "/static/img/logo-forest.jpg",
			},
			{
				Role: "UX Designer", Company: "UX Design Academy", Period: "2014-2016",
				Description: "Began my journey by learning to listen to the whispers of users. Created wireframes and prototypes that told compelling stories about user needs and pain points.",
				Logo:        "/static/img/logo-academy.jpg",
			},
		},
	}
}

func defaultProjects() ProjectsContent {
	return ProjectsContent{
		Title:    "Magical Projects",
		Subtitle: "Adventures in product craft",
	}
}

func defaultContact() ContactContent {
	return ContactContent{
		Title:       "Send a Message to the Spirit Realm",
		Subtitle:    "Let's Create Magic Together",
		Description: "Whether you're looking for a product wizard to join your quest or just want to share thoughts on Ghibli films and product management, I'd love to hear from you!",
		Email:       "hello@productjourney.com",
		Phone:       "+1 (555) 123-4567",
		Address:     "San Francisco, CA",
		SocialLinks: []SocialLink{
			{Platform: "linkedin", URL: "#"},
			{Platform: "twitter", URL: "#"},
			{Platform: "github", URL: "#"},
		},
	}
}

func defaultOverview() OverviewContent {
	return OverviewContent{
		Title: "Project Overview",
		ProjectSnapshot: Snapshot{
			Timeline: "6 months (Jan - Jun 2023)",
			Team:     "4 Designers, 2 Developers, 1 PM",
			Role:     "Lead UI/UX Designer & Art Director",
			Goal:     "Create an immersive Ghibli-inspired digital experience",
		},
		KeyOutcomes: []Outcome{
			{Value: "87%", Label: "User Engagement Increase"},
			{Value: "4.8★", Label: "Average Rating"},
			{Value: "32%", Label: "Faster Load Times"},
			{Value: "94%", Label: "Retention Rate"},
		},
	}
}

func defaultProblem() ProblemContent {
	return ProblemContent{
		Title:            "The Challenge",
		ProblemStatement: "Existing digital platforms fail to capture the magical essence and emotional depth of Studio Ghibli films. Fans crave more immersive experiences that go beyond static content and traditional e-commerce.",
		ResearchInsight:  "Our research showed that 78% of Ghibli fans feel current fan sites lack interactivity, while 65% would engage more with content that makes them feel part of the Ghibli world.",
		KeyInsights: []string{
			"Users want emotional connection, not just information",
			"Interactive elements increase engagement by 3x",
			"Authentic Ghibli aesthetic is crucial for acceptance",
			"Mobile-first approach needed for younger audiences",
		},
		Persona: Persona{
			Name: "Maya", Age: 24, Occupation: "Graphic Designer", Location: "Portland, OR",
			FavoriteGhibli: "Spirited Away",
			ImageURL:       "/static/img/persona.jpg",
			Goals: []string{
				"Feel connected to Ghibli worlds",
				"Discover behind-the-scenes content",
				"Share experiences with other fans",
			},
			Frustrations: []string{
				"Static, information-heavy sites",
				"Lack of community features",
				"Inauthentic Ghibli aesthetics",
			},
		},
		CompetitiveAnalysis: []Competitor{
			{Platform: "Ghibli Official Site", Strengths: "Authentic content", Weaknesses: "Minimal interactivity", Opportunity: "Expand engagement"},
			{Platform: "Fan Site A", Strengths: "Active community", Weaknesses: "Poor mobile experience", Opportunity: "Mobile optimization"},
			{Platform: "Fan Site B", Strengths: "Comprehensive info", Weaknesses: "Dated design", Opportunity: "Modern aesthetics"},
		},
	}
}

func defaultProcess() ProcessContent {
	return ProcessContent{
		Title: "Our Creative Process",
		Ideation: []IdeationItem{
			{Title: "Initial Sketches", Description: "Early concepts exploring Ghibli themes and interactive elements.", ImageURL: "/static/img/sketches.jpg"},
			{Title: "Collaborative Board", Description: "Digital whiteboard for remote team collaboration.", ImageURL: "/static/img/board.jpg"},
			{Title: "Visual Moodboard", Description: "Curated collection of Ghibli aesthetics and inspirations.", ImageURL: "/static/img/moodboard.jpg"},
		},
		DesignEvolution: []EvolutionStage{
			{Stage: "Low-fidelity Wireframe", ImageURL: "/static/img/wireframe.png"},
			{Stage: "Mid-fidelity Prototype", ImageURL: "/static/img/prototype.png"},
			{Stage: "High-fidelity Mockup", ImageURL: "/static/img/mockup.jpg"},
			{Stage: "Interactive Prototype", ImageURL: "/static/img/interactive.jpg"},
		},
		Timeline: []Phase{
			{Phase: "Research Phase", Date: "Jan 2023", Description: "Conducted user interviews, competitive analysis, and defined project scope."},
			{Phase: "Ideation Phase", Date: "Feb 2023", Description: "Brainstormed concepts, created sketches, and developed the visual direction."},
			{Phase: "Design Phase", Date: "Mar-Apr 2023", Description: "Created wireframes, prototypes, and high-fidelity designs."},
			{Phase: "Development Phase", Date: "May-Jun 2023", Description: "Implemented the designs, conducted testing, and launched the platform."},
		},
	}
}

func defaultShowcase() ShowcaseContent {
	return ShowcaseContent{
		Title: "Final Results",
		Features: []Feature{
			{Title: "Immersive Homepage", Description: "A magical entry point that sets the tone for the entire experience.", ImageURL: "/static/img/feature-home.png"},
			{Title: "Interactive Film Explorer", Description: "Discover Ghibli films through an enchanted forest of content.", ImageURL: "/static/img/feature-explorer.jpg"},
			{Title: "Character Companions", Description: "Virtual companions that guide users through the platform.", ImageURL: "/static/img/feature-companions.jpg"},
		},
		Testimonials: []Testimonial{
			{Quote: "This platform captures the essence of Ghibli in a way I've never experienced before.", Author: "Ghibli Fan Magazine", Rating: 5},
			{Quote: "The attention to detail and magical interactions make this a joy to use.", Author: "UX Design Awards", Rating: 4.8},
		},
	}
}

func defaultReflection() ReflectionContent {
	return ReflectionContent{
		Title: "Looking Back & Forward",
		Learnings: []string{
			"Balancing authentic Ghibli aesthetics with modern UX principles",
			"Creating emotional connections through digital interactions",
			"Collaborating effectively across design and development teams",
			"Measuring the impact of delight on user engagement",
		},
		NextSteps: []string{
			"Expand the platform with more interactive features",
			"Develop a mobile app version",
			"Create a community section for fan contributions",
			"Partner with Studio Ghibli for official content",
		},
		TeamAcknowledgments: []Acknowledgment{
			{Name: "Design Team", Contribution: "Creating the magical visual language and interactions"},
			{Name: "Development Team", Contribution: "Bringing the designs to life with technical excellence"},
			{Name: "Research Team", Contribution: "Uncovering deep insights about Ghibli fans"},
		},
	}
}
