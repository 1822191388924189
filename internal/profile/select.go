package profile

// ConfidenceThreshold is the minimum detection confidence required to
// trust the detected profile. Below it the default profile applies: a
// low-confidence classification must never silently apply an overly
// strict rule set.
const ConfidenceThreshold = 0.85

// Select picks the profile to grade with. An explicit override always
// wins; otherwise the detected profile applies only when confidence meets
// the threshold and the profile is registered. Every other case falls
// back to the catalog default.
func Select(c *Catalog, det DetectionResult, override string) *Profile {
	if override != "" {
		if p, ok := c.ByType(override); ok {
			return p
		}
		return c.Default()
	}

	if det.Confidence < ConfidenceThreshold {
		return c.Default()
	}

	if p, ok := c.ByType(det.DetectedProfile); ok {
		return p
	}
	return c.Default()
}
