package config

var configer Configer = &DotenvConfig{DotenvPath: DefaultDotenvPath}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}
