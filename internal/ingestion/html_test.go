package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `
<html>
<head><title>Initech Careers</title></head>
<body>
	<nav>Home | Jobs | About</nav>
	<h1>Platform Engineer</h1>
	<h3>Responsibilities</h3>
	<ul>
		<li>Operate Kubernetes clusters</li>
		<li>Build deployment tooling</li>
	</ul>
	<h3>Requirements</h3>
	<ul>
		<li>3+ years of infrastructure experience</li>
		<li>Strong Linux fundamentals</li>
	</ul>
	<h3>Skills</h3>
	<ul>
		<li>Go, Terraform</li>
		<li>AWS</li>
	</ul>
	<h3>Benefits</h3>
	<ul><li>Unlimited PTO</li></ul>
	<footer>Copyright Initech</footer>
</body>
</html>`

func TestExtractFromHTMLStructuredSections(t *testing.T) {
	job, err := ExtractFromHTML(sampleHTML)
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, []string{"Go", "Terraform", "AWS"}, job.Skills)
	assert.Equal(t, []string{
		"3+ years of infrastructure experience",
		"Strong Linux fundamentals",
	}, job.Requirements)
	assert.Equal(t, []string{
		"Operate Kubernetes clusters",
		"Build deployment tooling",
	}, job.Responsibilities)
	assert.NotContains(t, job.Responsibilities, "Unlimited PTO")
}

func TestExtractFromHTMLTitleFallsBackToPageTitle(t *testing.T) {
	job, err := ExtractFromHTML(`<html><head><title>Backend Engineer - Initech</title></head><body><p>text</p></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer - Initech", job.Title)
}

func TestExtractFromHTMLFallsBackToTextParsing(t *testing.T) {
	html := `<html><body><div>
		<p>Senior Data Engineer</p>
		<p>Skills: Python, Spark</p>
	</div></body></html>`

	job, err := ExtractFromHTML(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Spark"}, job.Skills)
}

func TestExtractFromHTMLEmptyDocument(t *testing.T) {
	job, err := ExtractFromHTML("<html><body></body></html>")
	require.NoError(t, err)
	assert.True(t, job.IsEmpty())
}
