package netstate

import "log"

// Safe wraps c so that a panic or an out-of-range result reads as Offline.
// Wrapping an already safe classifier returns it unchanged.
func Safe(c Classifier) Classifier {
	if s, ok := c.(*safeClassifier); ok {
		return s
	}
	return &safeClassifier{c: c}
}

type safeClassifier struct {
	c Classifier
}

func (s *safeClassifier) Classify() (result Category) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("classifier panic: %v", r)
			result = Offline
		}
	}()
	result = s.c.Classify()
	if !result.Valid() {
		log.Printf("classifier returned invalid category %d", int(result))
		return Offline
	}
	return result
}
