package recognition

// trainingCorpus seeds the default naive Bayes backend. Samples are
// deliberately short and colloquial to match the texture of the inputs
// the service receives.
var trainingCorpus = map[string][]string{
	"greeting": {
		"你好", "您好", "在吗", "嗨，你好", "hello", "hi there",
		"hey", "good morning", "再见", "谢谢你",
	},
	"affirmation": {
		"好的", "嗯", "知道了", "可以", "没问题",
		"ok", "okay", "yes", "sure", "fine",
	},
	"joy": {
		"今天真开心", "我太高兴了", "考试通过了，好幸福", "特别兴奋",
		"我很喜欢这里", "今天很快乐", "i am so happy today",
		"this is great, i love it", "feeling wonderful", "so glad right now",
	},
	"sadness": {
		"我好难过", "真的很伤心", "我想哭", "心情很失落", "最近很沮丧",
		"觉得很绝望", "i feel so sad", "i want to cry",
		"everything feels hopeless", "i am miserable",
	},
	"anger": {
		"气死我了", "我真的很生气", "太讨厌了", "烦死了", "他真是个混蛋",
		"我快被气疯了", "i am so angry", "this makes me furious",
		"i hate this so much", "i am really pissed off",
	},
	"anxiety": {
		"我好焦虑", "最近压力很大", "一直很紧张", "心里很不安", "我很担心考试",
		"总是心慌", "i feel anxious all the time", "so stressed lately",
		"i am really worried", "i am nervous about tomorrow",
	},
	"fear": {
		"我好害怕", "太恐怖了", "吓死我了", "我怕黑", "晚上一个人很恐惧",
		"i am scared", "this is terrifying", "i am so afraid",
		"that frightened me", "i fear the worst",
	},
	"surprise": {
		"真没想到", "太意外了", "他居然来了", "我很震惊", "竟然是这样",
		"what a surprise", "i am shocked", "that is unbelievable",
		"wow, i did not expect that",
	},
}

// sentimentWeights is a signed polarity lexicon. Tokens must match the
// tokenizer's output (lowercased words and Han bigrams).
var sentimentWeights = map[string]float64{
	"开心": 1, "高兴": 1, "快乐": 1, "幸福": 1, "兴奋": 0.8, "喜欢": 0.8,
	"太棒": 1, "不错": 0.6,
	"happy": 1, "glad": 0.8, "great": 0.8, "love": 1, "wonderful": 1,
	"awesome": 1, "good": 0.6,

	"难过": -1, "伤心": -1, "悲伤": -1, "想哭": -0.8, "失落": -0.8,
	"沮丧": -0.8, "绝望": -1,
	"sad": -1, "cry": -0.8, "hopeless": -1, "miserable": -1, "depressed": -1,

	"生气": -1, "愤怒": -1, "气死": -1, "讨厌": -0.8, "烦死": -0.8,
	"混蛋": -1, "畜生": -1,
	"angry": -1, "furious": -1, "hate": -1, "pissed": -1, "annoyed": -0.6,

	"焦虑": -0.8, "紧张": -0.6, "担心": -0.6, "不安": -0.6, "压力": -0.6,
	"心慌": -0.6,
	"anxious": -0.8, "nervous": -0.6, "worried": -0.6, "stressed": -0.8,

	"害怕": -0.8, "恐惧": -1, "恐怖": -0.8, "吓死": -0.8,
	"scared": -0.8, "terrified": -1, "afraid": -0.8, "fear": -0.6,
	"frightened": -0.8,

	"bad": -0.6, "terrible": -0.8, "awful": -0.8,
}
