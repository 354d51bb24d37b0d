package eumodel

// Project is the project reference carried in a user's bearer token. The
// euphrosyne backend owns the real project records; this is read-only here.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is the authenticated caller as decoded from the bearer token.
type User struct {
	ID       int       `json:"id"`
	Projects []Project `json:"projects"`
	IsAdmin  bool      `json:"is_admin"`
}

// HasProject reports whether the user is a member of the named project. The
// comparison is exact, no slug normalization happens at this stage.
func (u *User) HasProject(name string) bool {
	for _, p := range u.Projects {
		if p.Name == name {
			return true
		}
	}

	return false
}
