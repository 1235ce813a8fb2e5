package processor

// Bucket labels mirror the scoring rubrics embedded in the analysis
// prompt: five labeled bands over 0-100.

func bucketLabel(score int, labels [5]string) string {
	switch {
	case score <= 20:
		return labels[0]
	case score <= 40:
		return labels[1]
	case score <= 60:
		return labels[2]
	case score <= 80:
		return labels[3]
	default:
		return labels[4]
	}
}

func CredibilityLabel(score int) string {
	return bucketLabel(score, [5]string{"Deceit", "Questionable", "Mixed", "Reliable", "Highly Credible"})
}

func BiasLabel(score int) string {
	return bucketLabel(score, [5]string{"Extreme Left", "Left", "Center", "Right", "Extreme Right"})
}

func SentimentLabel(score int) string {
	return bucketLabel(score, [5]string{"Very Negative", "Negative", "Neutral", "Positive", "Very Positive"})
}

func AuthoritarianismLabel(score int) string {
	return bucketLabel(score, [5]string{"Democratic", "Mostly Democratic", "Mixed", "Authoritarian Leaning", "Totalitarian"})
}
