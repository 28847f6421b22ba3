package unsplash

// Photo is the subset of the Unsplash photo object the frontend consumes.
// The backend never stores these; collections hold only the ID.
type Photo struct {
	ID             string     `json:"id"`
	Description    string     `json:"description"`
	AltDescription string     `json:"alt_description"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	URLs           PhotoURLs  `json:"urls"`
	Links          PhotoLinks `json:"links"`
	User           PhotoUser  `json:"user"`
}

type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type PhotoLinks struct {
	HTML     string `json:"html"`
	Download string `json:"download"`
}

type PhotoUser struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	ProfileImage struct {
		Small string `json:"small"`
	} `json:"profile_image"`
}

// SearchResult mirrors the /search/photos response shape.
type SearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}
