package normalizer

// englishStopWords is the standard English stop-word list (the Snowball
// list used by common text-mining toolkits).
var englishStopWords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
	"you", "your", "yours", "yourself", "yourselves",
	"he", "him", "his", "himself", "she", "her", "hers", "herself",
	"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
	"what", "which", "who", "whom", "this", "that", "these", "those",
	"am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing",
	"would", "should", "could", "ought",
	"i'm", "you're", "he's", "she's", "it's", "we're", "they're",
	"i've", "you've", "we've", "they've",
	"i'd", "you'd", "he'd", "she'd", "we'd", "they'd",
	"i'll", "you'll", "he'll", "she'll", "we'll", "they'll",
	"isn't", "aren't", "wasn't", "weren't", "hasn't", "haven't", "hadn't",
	"doesn't", "don't", "didn't", "won't", "wouldn't", "shan't", "shouldn't",
	"can't", "cannot", "couldn't", "mustn't", "let's", "that's", "who's",
	"what's", "here's", "there's", "when's", "where's", "why's", "how's",
	"a", "an", "the", "and", "but", "if", "or", "because", "as", "until",
	"while", "of", "at", "by", "for", "with", "about", "against", "between",
	"into", "through", "during", "before", "after", "above", "below",
	"to", "from", "up", "down", "in", "out", "on", "off", "over", "under",
	"again", "further", "then", "once", "here", "there", "when", "where",
	"why", "how", "all", "any", "both", "each", "few", "more", "most",
	"other", "some", "such", "no", "nor", "not", "only", "own", "same",
	"so", "than", "too", "very",
}

// domainStopWords is the hand-curated supplement: words that dominate
// complaint narratives but carry no signal for the product category.
// Contraction stubs like "dont" appear here because punctuation removal
// runs before stop-word filtering, so the apostrophe forms in the
// standard list never match.
var domainStopWords = []string{
	"told", "called", "back", "get", "will", "never", "said", "can",
	"call", "now", "also", "even", "just", "like", "please", "take",
	"want", "going", "without", "got", "however", "went", "able",
	"didnt", "dont", "put", "later", "way", "done", "needed", "today",
	"used", "took",
}

// StopWordSet builds the combined stop-word set, optionally extended
// with caller-supplied extras.
func StopWordSet(extras ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(englishStopWords)+len(domainStopWords)+len(extras))
	for _, w := range englishStopWords {
		set[w] = struct{}{}
	}
	for _, w := range domainStopWords {
		set[w] = struct{}{}
	}
	for _, w := range extras {
		set[w] = struct{}{}
	}
	return set
}
