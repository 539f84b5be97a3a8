package run

// totalDuration returns the programmed length of a step sequence in
// seconds: the sum of duration times repetitions over all steps.
func totalDuration(steps []Step) int {
	total := 0
	for _, s := range steps {
		total += s.DurationSeconds * s.Repetitions
	}
	return total
}

// locate walks the step sequence to find where an active elapsed value
// falls: the step index, the 1-based repetition within that step, and the
// seconds spent inside the current repetition. Expects elapsed below the
// total duration; steps with a zero duration are skipped.
//
// An exact repetition boundary reports the full duration rather than
// second zero, so a 60s x2 step reads "repetition 2, 60s in" at elapsed
// 60 and "repetition 2, 1s in" at 61. Step boundaries roll over normally.
func locate(elapsed int, steps []Step) (idx, rep, inStep int) {
	remaining := elapsed
	for i, s := range steps {
		block := s.DurationSeconds * s.Repetitions
		if remaining >= block {
			remaining -= block
			continue
		}
		rep = remaining/s.DurationSeconds + 1
		if rep > s.Repetitions {
			rep = s.Repetitions
		}
		inStep = remaining % s.DurationSeconds
		if inStep == 0 && rep > 1 {
			inStep = s.DurationSeconds
		}
		return i, rep, inStep
	}
	return 0, 0, 0
}
