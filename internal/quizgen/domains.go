package quizgen

// AWSDomains is the built-in catalog of knowledge domains used when a
// user has no weak domains yet.
var AWSDomains = []string{
	"IAM (Identity and Access Management)",
	"EC2 (Elastic Compute Cloud)",
	"S3 (Simple Storage Service)",
	"VPC (Virtual Private Cloud)",
	"RDS (Relational Database Service)",
	"Lambda",
	"CloudWatch",
	"CloudFormation",
	"Security and Compliance",
	"Pricing and Support",
}

// MaxFocusDomains caps how many domains a quiz concentrates on.
const MaxFocusDomains = 3

// FocusDomains returns the first MaxFocusDomains weak domains, or the
// head of AWSDomains when there are none. Blank and repeated names are
// skipped.
func FocusDomains(weak []string) []string {
	out := make([]string, 0, MaxFocusDomains)
	seen := make(map[string]bool, len(weak))
	for _, d := range weak {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
		if len(out) == MaxFocusDomains {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}
	return append(out, AWSDomains[:MaxFocusDomains]...)
}
