package corpus

// Content is the YAML content file: the site's source material before flattening.
type Content struct {
	Profile    *Profile         `yaml:"profile"`
	Experience []Experience     `yaml:"experience"`
	Projects   []Project        `yaml:"projects"`
	Education  []EducationTrack `yaml:"education"`
	Writing    []Writing        `yaml:"writing"`
}

// Profile is the single "about me" entry.
type Profile struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Bio         string      `yaml:"bio"`
	CareerGoals string      `yaml:"career_goals"`
	Interests   []string    `yaml:"interests"`
	Focus       []string    `yaml:"focus"`
	Highlights  []Highlight `yaml:"highlights"`
	Location    string      `yaml:"location"`
	Email       string      `yaml:"email"`
	LinkedIn    string      `yaml:"linkedin"`
	GitHub      string      `yaml:"github"`
}

// Highlight is a labelled profile fact, rendered as "Label: value".
type Highlight struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Experience is one role.
type Experience struct {
	ID       string   `yaml:"id"`
	Company  string   `yaml:"company"`
	Role     string   `yaml:"role"`
	Team     string   `yaml:"team"`
	Location string   `yaml:"location"`
	Dates    string   `yaml:"dates"`
	Blurb    string   `yaml:"blurb"`
	Stack    []string `yaml:"stack"`
	Tags     []string `yaml:"tags"`
}

// Project is a portfolio project.
type Project struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Blurb   string       `yaml:"blurb"`
	Details string       `yaml:"details"`
	Stack   []string     `yaml:"stack"`
	Links   ProjectLinks `yaml:"links"`
	Tags    []string     `yaml:"tags"`
}

// ProjectLinks are optional external links.
type ProjectLinks struct {
	GitHub string `yaml:"github"`
	Demo   string `yaml:"demo"`
}

// EducationTrack groups courses.
type EducationTrack struct {
	Track   string   `yaml:"track"`
	Courses []Course `yaml:"courses"`
}

// Course is one course within a track.
type Course struct {
	ID           string          `yaml:"id"`
	Name         string          `yaml:"name"`
	Description  string          `yaml:"description"`
	Blurb        string          `yaml:"blurb"`
	Technologies []string        `yaml:"technologies"`
	Projects     []CourseProject `yaml:"projects"`
	Tags         []string        `yaml:"tags"`
}

// CourseProject is a project completed in a course.
type CourseProject struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Links       []string `yaml:"links"`
}

// Writing is a post.
type Writing struct {
	ID      string   `yaml:"id"`
	Slug    string   `yaml:"slug"`
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"` // 2006-01-02
	Excerpt string   `yaml:"excerpt"`
	Content string   `yaml:"content"`
	Tags    []string `yaml:"tags"`
}
