// ABOUTME: Catalogue of common hackathon skills used for suggestions
// ABOUTME: Matching is a case-insensitive substring test

package hackathon

import "strings"

// CommonSkills is the suggestion catalogue
var CommonSkills = []string{
	"JavaScript", "Python", "Java", "React", "Node.js", "Angular", "Vue.js",
	"HTML", "CSS", "SQL", "MongoDB", "PostgreSQL", "AWS", "Docker", "Kubernetes",
	"Git", "Linux", "Spring Boot", "Django", "Flask", "Express.js", "TypeScript",
	"C++", "C#", "PHP", "Ruby", "Swift", "Kotlin", "Go", "Rust", "Machine Learning",
	"Data Science", "Artificial Intelligence", "DevOps", "Cybersecurity", "UI/UX Design",
	"Web Development", "Mobile Development", "Cloud Computing", "Blockchain",
}

// SuggestSkills filters the catalogue by query, leaving out chosen skills
func SuggestSkills(query string, chosen *SkillSet) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	for _, s := range CommonSkills {
		if chosen != nil && chosen.Contains(s) {
			continue
		}
		if strings.Contains(strings.ToLower(s), q) {
			out = append(out, s)
		}
	}
	return out
}
