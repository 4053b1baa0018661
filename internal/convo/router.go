package convo

import "strings"

// RouteUtterance decides whether a freshly transcribed utterance answers the
// currently assigned task. If one is open it is completed with the utterance
// text and true is returned; otherwise the profile is left alone. This runs
// before the next prompt is composed, because a completed task switches the
// instruction to the feedback variant.
func RouteUtterance(profile *Profile, text string) (bool, error) {
	open := profile.Tasks.Assigned()
	if open == nil {
		return false, nil
	}
	if _, err := profile.Tasks.Complete(open.ID, text); err != nil {
		return false, err
	}
	return true, nil
}

// ExtractTask splits Responder output at the first task sentinel. The text
// before the sentinel is the reply shown to the user; the text after becomes
// the description of a newly assigned task. Output without a sentinel passes
// through untouched. An empty description after the sentinel still creates
// the task.
func ExtractTask(profile *Profile, response string) (reply string, task *Task, err error) {
	before, after, found := strings.Cut(response, TaskSentinel)
	if !found {
		return response, nil, nil
	}
	task, err = profile.Tasks.Assign(strings.TrimSpace(after))
	if err != nil {
		return response, nil, err
	}
	return strings.TrimSpace(before), task, nil
}
