package notes

type mood int

const (
	moodIdle mood = iota
	moodThinking
	moodHappy
	moodSad
)

var moodArt = map[mood]string{
	moodIdle: `  /\_/\
 ( o.o )  Manager-chan
  > ^ <`,
	moodThinking: `  /\_/\
 ( -.- )  hmm...
  > ? <`,
	moodHappy: `  /\_/\
 ( ^.^ )  yay!
  > v <`,
	moodSad: `  /\_/\
 ( T.T )  gomen...
  > n <`,
}

func (m mood) art() string {
	if a, ok := moodArt[m]; ok {
		return a
	}
	return moodArt[moodIdle]
}
