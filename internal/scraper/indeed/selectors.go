package indeed

// Selectors for the rendered results page. Indeed ships generated class
// names, so most of these match on the literal class attribute.
const (
	resultsListSelector = `[class="jobsearch-ResultsList css-0"]`
	jobCardSelector     = `[class="job_seen_beacon"]`

	jobCountSelector       = `[class="jobsearch-JobCountAndSortPane-jobCount"]`
	legacyJobCountSelector = `[id="searchCountPages"]`

	jobTitleSelector    = `[class="jcs-JobTitle css-jspxzf eu4oa1w0"]`
	salarySelector      = `[class="metadata salary-snippet-container"]`
	locationSelector    = `[class="companyLocation"]`
	metadataSelector    = `[class="metadata"]`
	dateSelector        = `[class="date"]`
	companyNameSelector = `[class="companyName"]`

	detailFrameSelector  = `[id="vjs-container-iframe"]`
	ratingsCountSelector = `[class="icl-Ratings-count"]`
)
