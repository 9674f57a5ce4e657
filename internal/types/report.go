// Package types provides type definitions for structured data used throughout the career-pathway system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// NormalizedReport is the fixed-shape career analysis report. Every section and leaf is always
// present; the `default` tags are the values substituted when the generator omits a field.
type NormalizedReport struct {
	ExecutiveSummary   ExecutiveSummary   `json:"executiveSummary"`
	ProfileOverview    ProfileOverview    `json:"profileOverview"`
	SkillsAssessment   SkillsAssessment   `json:"skillsAssessment"`
	FrameworkAlignment FrameworkAlignment `json:"frameworkAlignment"`
	CareerPathways     CareerPathways     `json:"careerPathways"`
	LearningPlan       LearningPlan       `json:"learningPlan"`
	ActionPlan         ActionPlan         `json:"actionPlan"`
	MarketInsights     MarketInsights     `json:"marketInsights"`
	ExperienceAnalysis ExperienceAnalysis `json:"experienceAnalysis"`
	RisksAndChallenges RisksAndChallenges `json:"risksAndChallenges"`
	NextSteps          NextSteps          `json:"nextSteps"`
}

// ExecutiveSummary is section 1.
type ExecutiveSummary struct {
	Overview        string   `json:"overview"`
	KeyFindings     []string `json:"keyFindings"`
	FitScore        FitScore `json:"fitScore"`
	RecommendedPath string   `json:"recommendedPath"`
}

// FitScore rates how well the profile fits the target role.
type FitScore struct {
	Score       float64 `json:"score"`
	OutOf       float64 `json:"outOf" default:"10"`
	Description string  `json:"description" default:"No score available"`
}

// ProfileOverview is section 2.
type ProfileOverview struct {
	CurrentRole       string  `json:"currentRole"`
	TargetRole        string  `json:"targetRole"`
	Industry          string  `json:"industry"`
	EducationLevel    string  `json:"educationLevel"`
	YearsOfExperience float64 `json:"yearsOfExperience"`
	CareerStage       string  `json:"careerStage"`
}

// SkillsAssessment is section 3. Gaps and strengths feed the skill reconciler.
type SkillsAssessment struct {
	Summary            string           `json:"summary"`
	Gaps               []ReportGap      `json:"gaps"`
	Strengths          []ReportStrength `json:"strengths"`
	TransferableSkills []string         `json:"transferableSkills"`
}

// ReportGap is a gap assertion as it appears inside a report.
type ReportGap struct {
	Skill       string `json:"skill"`
	Importance  string `json:"importance"`
	Description string `json:"description"`
	Framework   string `json:"framework"`
}

// ReportStrength is a strength assertion as it appears inside a report.
type ReportStrength struct {
	Skill       string `json:"skill"`
	Level       string `json:"level"`
	Relevance   string `json:"relevance"`
	Description string `json:"description"`
	Framework   string `json:"framework"`
}

// FrameworkAlignment is section 4.
type FrameworkAlignment struct {
	SFIA    SFIAAlignment    `json:"sfia"`
	DigComp DigCompAlignment `json:"digComp"`
}

// SFIAAlignment positions the profile against SFIA 9.
type SFIAAlignment struct {
	Framework    string           `json:"framework" default:"SFIA 9"`
	CurrentLevel string           `json:"currentLevel"`
	TargetLevel  string           `json:"targetLevel"`
	Summary      string           `json:"summary"`
	Skills       []AlignmentSkill `json:"skills"`
}

// DigCompAlignment positions the profile against DigComp 2.2.
type DigCompAlignment struct {
	Framework    string           `json:"framework" default:"DigComp 2.2"`
	CurrentLevel string           `json:"currentLevel"`
	TargetLevel  string           `json:"targetLevel"`
	Summary      string           `json:"summary"`
	Skills       []AlignmentSkill `json:"skills"`
}

// AlignmentSkill is a framework skill named in the alignment section.
type AlignmentSkill struct {
	Name        string `json:"name"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// CareerPathways is section 5.
type CareerPathways struct {
	Primary      Pathway   `json:"primary"`
	Alternatives []Pathway `json:"alternatives"`
}

// Pathway is one suggested route to a target role.
type Pathway struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Timeline    string  `json:"timeline"`
	FitScore    float64 `json:"fitScore"`
}

// LearningPlan is section 6.
type LearningPlan struct {
	Courses        []Course        `json:"courses"`
	Certifications []Certification `json:"certifications"`
	Resources      []string        `json:"resources"`
}

// Course is a recommended course.
type Course struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
	Skill    string `json:"skill"`
	Duration string `json:"duration"`
	URL      string `json:"url"`
}

// Certification is a recommended certification.
type Certification struct {
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Relevance string `json:"relevance"`
}

// ActionPlan is section 7.
type ActionPlan struct {
	ShortTerm  []ActionItem `json:"shortTerm"`
	MediumTerm []ActionItem `json:"mediumTerm"`
	LongTerm   []ActionItem `json:"longTerm"`
}

// ActionItem is a single step in the action plan.
type ActionItem struct {
	Action    string `json:"action"`
	Timeframe string `json:"timeframe"`
	Priority  string `json:"priority"`
}

// MarketInsights is section 8.
type MarketInsights struct {
	DemandLevel  string      `json:"demandLevel"`
	SalaryRange  SalaryRange `json:"salaryRange"`
	Trends       []string    `json:"trends"`
	TopEmployers []string    `json:"topEmployers"`
}

// SalaryRange is an indicative salary band.
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency" default:"GBP"`
}

// ExperienceAnalysis is section 9.
type ExperienceAnalysis struct {
	Summary       string         `json:"summary"`
	Highlights    []string       `json:"highlights"`
	RelevantRoles []RelevantRole `json:"relevantRoles"`
}

// RelevantRole is a past role judged relevant to the target.
type RelevantRole struct {
	Role         string `json:"role"`
	Organisation string `json:"organisation"`
	Relevance    string `json:"relevance"`
	Description  string `json:"description"`
}

// RisksAndChallenges is section 10.
type RisksAndChallenges struct {
	Challenges  []Challenge `json:"challenges"`
	OverallRisk string      `json:"overallRisk"`
}

// Challenge is a risk with its mitigation.
type Challenge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Mitigation  string `json:"mitigation"`
}

// NextSteps is section 11.
type NextSteps struct {
	Immediate   []string    `json:"immediate"`
	Milestones  []Milestone `json:"milestones"`
	ClosingNote string      `json:"closingNote"`
}

// Milestone is a dated checkpoint.
type Milestone struct {
	Title      string `json:"title"`
	TargetDate string `json:"targetDate"`
}

// ReportSectionNames lists the JSON names of the 11 report sections in contract order.
var ReportSectionNames = []string{
	"executiveSummary",
	"profileOverview",
	"skillsAssessment",
	"frameworkAlignment",
	"careerPathways",
	"learningPlan",
	"actionPlan",
	"marketInsights",
	"experienceAnalysis",
	"risksAndChallenges",
	"nextSteps",
}
