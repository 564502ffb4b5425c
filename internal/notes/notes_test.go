package notes

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic",
			text: "We must fix this. It was a nice day.",
			want: []string{"We must fix this.", "It was a nice day."},
		},
		{
			name: "mixed terminators",
			text: "Really? Yes! Fine.",
			want: []string{"Really?", "Yes!", "Fine."},
		},
		{
			name: "terminator run",
			text: "What?! No way... Okay.",
			want: []string{"What?!", "No way...", "Okay."},
		},
		{
			name: "decimal not split",
			text: "Pi is 3.14 roughly. Next point.",
			want: []string{"Pi is 3.14 roughly.", "Next point."},
		},
		{
			name: "trailing fragment without terminator",
			text: "First sentence. second without end",
			want: []string{"First sentence.", "second without end"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractActionItems(t *testing.T) {
	keywords := []string{"todo", "action", "follow up", "must", "should"}

	got := ExtractActionItems("We must fix this. It was a nice day.", keywords)
	want := []string{"We must fix this."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractActionItemsCaseInsensitive(t *testing.T) {
	got := ExtractActionItems("TODO: ship the release. Nothing else happened.", []string{"todo"})
	want := []string{"TODO: ship the release."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractActionItemsSingleMatchPerSentence(t *testing.T) {
	// Two keywords in one sentence must not duplicate it.
	got := ExtractActionItems("We must follow up on this.", []string{"must", "follow up"})
	want := []string{"We must follow up on this."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractActionItemsNoMatch(t *testing.T) {
	if got := ExtractActionItems("It was a nice day.", []string{"todo"}); got != nil {
		t.Errorf("expected nil, got %q", got)
	}
}

func TestExtractTopics(t *testing.T) {
	got := ExtractTopics("apple apple banana banana banana cherry", 2)
	want := []string{"banana", "apple"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTopicsSkipsShortWords(t *testing.T) {
	got := ExtractTopics("the cat sat on the roadmap roadmap", 5)
	want := []string{"roadmap"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTopicsTieKeepsFirstSeenOrder(t *testing.T) {
	got := ExtractTopics("alpha beta alpha beta gamma", 3)
	want := []string{"alpha", "beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTopicsClampsTopN(t *testing.T) {
	got := ExtractTopics("alpha beta", 10)
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTopicsLowercases(t *testing.T) {
	got := ExtractTopics("Budget budget BUDGET", 1)
	want := []string{"budget"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
