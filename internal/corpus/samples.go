package corpus

import "github.com/ludo-technologies/plagscan/domain"

// SampleSource tags the bundled reference entries
const SampleSource = "public_algorithms"

// Samples returns the bundled public algorithm snippets used to seed an empty corpus
func Samples() []domain.AddRequest {
	return []domain.AddRequest{
		{
			Code: `def bubble_sort(arr):
    n = len(arr)
    for i in range(n):
        for j in range(0, n-i-1):
            if arr[j] > arr[j+1]:
                arr[j], arr[j+1] = arr[j+1], arr[j]
    return arr
`,
			Language:    domain.LanguagePython,
			Description: "Bubble sort implementation",
			Source:      SampleSource,
		},
		{
			Code: `function fibonacci(n) {
    if (n <= 1) return n;
    return fibonacci(n - 1) + fibonacci(n - 2);
}
`,
			Language:    domain.LanguageJavaScript,
			Description: "Recursive Fibonacci",
			Source:      SampleSource,
		},
		{
			Code: `def binary_search(arr, target):
    left, right = 0, len(arr) - 1
    while left <= right:
        mid = (left + right) // 2
        if arr[mid] == target:
            return mid
        elif arr[mid] < target:
            left = mid + 1
        else:
            right = mid - 1
    return -1
`,
			Language:    domain.LanguagePython,
			Description: "Binary search implementation",
			Source:      SampleSource,
		},
	}
}
